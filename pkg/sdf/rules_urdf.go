// SPDX-License-Identifier: MPL-2.0

package sdf

import "github.com/ben-isaac/pcg-gazebo/pkg/scalar"

// URDF leaves are attributes (<mass value="..."/>, <limit effort="..."/>);
// each rule is named after the attribute, or the element for single-value elements.
var urdfRules = []scalar.Rule{
	{Name: "mass", Dialect: DialectURDF, Doc: "Link mass in kg", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "ixx", Dialect: DialectURDF, Doc: "Moment of inertia about x", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "iyy", Dialect: DialectURDF, Doc: "Moment of inertia about y", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "izz", Dialect: DialectURDF, Doc: "Moment of inertia about z", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "ixy", Dialect: DialectURDF, Doc: "Product of inertia xy", Default: scalar.Float(0)},
	{Name: "ixz", Dialect: DialectURDF, Doc: "Product of inertia xz", Default: scalar.Float(0)},
	{Name: "iyz", Dialect: DialectURDF, Doc: "Product of inertia yz", Default: scalar.Float(0)},

	{Name: "radius", Dialect: DialectURDF, Doc: "Sphere or cylinder radius in m", Default: scalar.Float(1), Constraint: scalar.Positive()},
	{Name: "length", Dialect: DialectURDF, Doc: "Cylinder length in m", Default: scalar.Float(1), Constraint: scalar.Positive()},

	{Name: "lower", Dialect: DialectURDF, Doc: "Lower joint limit", Default: scalar.Float(0)},
	{Name: "upper", Dialect: DialectURDF, Doc: "Upper joint limit", Default: scalar.Float(0)},
	{Name: "effort", Dialect: DialectURDF, Doc: "Maximum joint effort", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "velocity", Dialect: DialectURDF, Doc: "Maximum joint velocity", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	{Name: "damping", Dialect: DialectURDF, Doc: "Joint viscous damping coefficient", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "friction", Dialect: DialectURDF, Doc: "Joint static friction", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	{Name: "soft_lower_limit", Dialect: DialectURDF, Doc: "Safety controller lower bound", Default: scalar.Float(0)},
	{Name: "soft_upper_limit", Dialect: DialectURDF, Doc: "Safety controller upper bound", Default: scalar.Float(0)},
	{Name: "k_position", Dialect: DialectURDF, Doc: "Safety controller position gain", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "k_velocity", Dialect: DialectURDF, Doc: "Safety controller velocity gain", Default: scalar.Float(0), Constraint: scalar.NonNegative()},

	{Name: "rising", Dialect: DialectURDF, Doc: "Calibration rising edge position", Default: scalar.Float(0)},
	{Name: "falling", Dialect: DialectURDF, Doc: "Calibration falling edge position", Default: scalar.Float(0)},

	{Name: "multiplier", Dialect: DialectURDF, Doc: "Mimic joint multiplier", Default: scalar.Float(1)},
	{Name: "offset", Dialect: DialectURDF, Doc: "Mimic joint offset", Default: scalar.Float(0)},

	{Name: "mu1", Dialect: DialectURDF, Doc: "Gazebo extension friction coefficient along the first direction", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "mu2", Dialect: DialectURDF, Doc: "Gazebo extension friction coefficient along the second direction", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "kp", Dialect: DialectURDF, Doc: "Gazebo extension contact stiffness", Default: scalar.Float(1e12), Constraint: scalar.NonNegative()},
	{Name: "kd", Dialect: DialectURDF, Doc: "Gazebo extension contact damping", Default: scalar.Float(1), Constraint: scalar.NonNegative()},
	{Name: "min_depth", Dialect: DialectURDF, Doc: "Gazebo extension minimum contact depth", Default: scalar.Float(0), Constraint: scalar.NonNegative()},
	{Name: "max_contacts", Dialect: DialectURDF, Doc: "Gazebo extension maximum contacts", IntegerOnly: true, Default: scalar.Int(10), Constraint: scalar.NonNegative()},
}
