// SPDX-License-Identifier: MPL-2.0

package sdf

import (
	"math"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
)

var (
	// Angular is the angular velocity decay of a link (<velocity_decay><angular>).
	Angular = scalar.Rule{
		Name:       "angular",
		Dialect:    DialectSDF,
		Doc:        "Angular velocity decay factor",
		Default:    scalar.Int(0),
		Constraint: fraction(),
	}

	// Linear is the linear velocity decay of a link (<velocity_decay><linear>).
	Linear = scalar.Rule{
		Name:       "linear",
		Dialect:    DialectSDF,
		Doc:        "Linear velocity decay factor",
		Default:    scalar.Int(0),
		Constraint: fraction(),
	}
)

var sdfRules = []scalar.Rule{
	Angular,
	Linear,

	// <inertial>
	{Name: "mass", Dialect: DialectSDF, Doc: "Link mass in kg", Default: scalar.Float(1), Constraint: scalar.Positive()},
	{Name: "ixx", Dialect: DialectSDF, Doc: "Moment of inertia about x", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "iyy", Dialect: DialectSDF, Doc: "Moment of inertia about y", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "izz", Dialect: DialectSDF, Doc: "Moment of inertia about z", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "ixy", Dialect: DialectSDF, Doc: "Product of inertia xy", Default: scalar.Float(0)},
	{Name: "ixz", Dialect: DialectSDF, Doc: "Product of inertia xz", Default: scalar.Float(0)},
	{Name: "iyz", Dialect: DialectSDF, Doc: "Product of inertia yz", Default: scalar.Float(0)},

	// <geometry>
	{Name: "radius", Dialect: DialectSDF, Doc: "Sphere or cylinder radius in m", Default: scalar.Float(1), Constraint: scalar.Positive()},
	{Name: "length", Dialect: DialectSDF, Doc: "Cylinder length in m", Default: scalar.Float(1), Constraint: scalar.Positive()},

	// <surface><friction>
	{Name: "mu", Dialect: DialectSDF, Doc: "Coulomb friction coefficient along the first direction", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "mu2", Dialect: DialectSDF, Doc: "Coulomb friction coefficient along the second direction", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "slip1", Dialect: DialectSDF, Doc: "Force dependent slip along the first direction", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "slip2", Dialect: DialectSDF, Doc: "Force dependent slip along the second direction", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	// <surface><bounce>
	{Name: "restitution_coefficient", Dialect: DialectSDF, Doc: "Bounce restitution coefficient", Default: scalar.Float(0), Constraint: fraction()},
	{Name: "threshold", Dialect: DialectSDF, Doc: "Bounce capture velocity in m/s", Default: scalar.Float(100000), Constraint: scalar.NonNegative()},

	// <surface><contact>
	{Name: "soft_cfm", Dialect: DialectSDF, Doc: "Soft constraint force mixing", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "soft_erp", Dialect: DialectSDF, Doc: "Soft error reduction parameter", Default: scalar.Float(0.2), Constraint: fraction()},
	{Name: "kp", Dialect: DialectSDF, Doc: "Dynamically stiffness-equivalent coefficient", Default: scalar.Float(1e12), Constraint: scalar.NonNegative()},
	{Name: "kd", Dialect: DialectSDF, Doc: "Dynamically damping-equivalent coefficient", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "max_vel", Dialect: DialectSDF, Doc: "Maximum contact correction velocity", Default: scalar.Float(0.01), Constraint: scalar.NonNegative()},
	{Name: "min_depth", Dialect: DialectSDF, Doc: "Minimum contact depth", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "laser_retro", Dialect: DialectSDF, Doc: "Intensity value returned by laser sensors", Default: scalar.Float(0)},

	// <visual>
	{Name: "transparency", Dialect: DialectSDF, Doc: "Visual transparency", Default: scalar.Float(0), Constraint: fraction()},
	{Name: "shininess", Dialect: DialectSDF, Doc: "Material specular exponent", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	// <joint><axis><dynamics>
	{Name: "damping", Dialect: DialectSDF, Doc: "Joint viscous damping coefficient", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "friction", Dialect: DialectSDF, Doc: "Joint static friction", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "spring_reference", Dialect: DialectSDF, Doc: "Joint spring reference position", Default: scalar.Float(0)},
	{Name: "spring_stiffness", Dialect: DialectSDF, Doc: "Joint spring stiffness", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	// <joint><axis><limit>
	{Name: "lower", Dialect: DialectSDF, Doc: "Lower joint limit", Default: scalar.Float(-1e16)},
	{Name: "upper", Dialect: DialectSDF, Doc: "Upper joint limit", Default: scalar.Float(1e16)},
	{Name: "effort", Dialect: DialectSDF, Doc: "Joint effort limit, -1 for unlimited", Default: scalar.Int(-1), Constraint: unlimited()},
	{Name: "velocity", Dialect: DialectSDF, Doc: "Joint velocity limit, -1 for unlimited", Default: scalar.Int(-1), Constraint: unlimited()},
	{Name: "stiffness", Dialect: DialectSDF, Doc: "Joint stop stiffness", Default: scalar.Float(1e8), Constraint: scalar.NonNegative()},
	{Name: "dissipation", Dialect: DialectSDF, Doc: "Joint stop dissipation", Default: scalar.Float(1), Constraint: scalar.NonNegative()},

	// <physics>
	{Name: "max_step_size", Dialect: DialectSDF, Doc: "Maximum simulation time step in s", Default: scalar.Float(0.001), Constraint: scalar.Positive()},
	{Name: "real_time_factor", Dialect: DialectSDF, Doc: "Target simulation speed relative to real time", Default: scalar.Float(1), Constraint: scalar.Positive()},
	{Name: "real_time_update_rate", Dialect: DialectSDF, Doc: "Physics updates per second, 0 for as fast as possible", Default: scalar.Float(1000), Constraint: scalar.NonNegative()},
	{Name: "max_contacts", Dialect: DialectSDF, Doc: "Maximum contacts between two entities", IntegerOnly: true, Default: scalar.Int(20), Constraint: scalar.NonNegative()},
	{Name: "iters", Dialect: DialectSDF, Doc: "ODE solver iterations", IntegerOnly: true, Default: scalar.Int(50), Constraint: scalar.AtLeast(1)},
	{Name: "precon_iters", Dialect: DialectSDF, Doc: "ODE preconditioning iterations", IntegerOnly: true, Default: scalar.Int(0), Constraint: scalar.NonNegative()},
	{Name: "sor", Dialect: DialectSDF, Doc: "Successive over-relaxation parameter", Default: scalar.Float(1.3), Constraint: scalar.Positive()},
	{Name: "cfm", Dialect: DialectSDF, Doc: "Constraint force mixing", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "erp", Dialect: DialectSDF, Doc: "Error reduction parameter", Default: scalar.Float(0.2), Constraint: fraction()},
	{Name: "contact_max_correcting_vel", Dialect: DialectSDF, Doc: "Maximum correcting velocity at contacts", Default: scalar.Float(100), Constraint: scalar.NonNegative()},
	{Name: "contact_surface_layer", Dialect: DialectSDF, Doc: "Contact surface layer depth", Default: scalar.Float(0.001), Constraint: scalar.NonNegative()},

	// <sensor>
	{Name: "update_rate", Dialect: DialectSDF, Doc: "Sensor update rate in Hz, 0 for every step", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "samples", Dialect: DialectSDF, Doc: "Ray samples per scan", IntegerOnly: true, Default: scalar.Int(640), Constraint: scalar.AtLeast(1)},
	{Name: "resolution", Dialect: DialectSDF, Doc: "Ray sample resolution multiplier", Default: scalar.Float(1), Constraint: scalar.Positive()},
	{Name: "horizontal_fov", Dialect: DialectSDF, Doc: "Camera horizontal field of view in rad", Default: scalar.Float(1.047), Constraint: scalar.Range{Min: 0, Max: math.Pi, HasMin: true, HasMax: true, MinExclusive: true}},
	{Name: "near", Dialect: DialectSDF, Doc: "Camera near clip distance", Default: scalar.Float(0.1), Constraint: scalar.Positive()},
	{Name: "far", Dialect: DialectSDF, Doc: "Camera far clip distance", Default: scalar.Float(100), Constraint: scalar.Positive()},

	// <light>
	{Name: "constant", Dialect: DialectSDF, Doc: "Light constant attenuation", Default: scalar.Float(1), Constraint: fraction()},
	{Name: "quadratic", Dialect: DialectSDF, Doc: "Light quadratic attenuation", Default: scalar.Float(0), Constraint: fraction()},
	{Name: "falloff", Dialect: DialectSDF, Doc: "Spot light falloff", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
}
