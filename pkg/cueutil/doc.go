// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles embedded CUE schemas and decodes user files against them.
//
// Both the leaf manifests and the configuration file are CUE documents checked
// against a definition in an embedded schema. The flow is always the same:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Compile the user data and unify it with the definition
//  3. Validate, then decode into a Go value
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[manifestFile](
//	    schemaBytes,
//	    data,
//	    "#Manifest",
//	    cueutil.WithFilename("robot.leaves.cue"),
//	)
//	if err != nil {
//	    return nil, err // error carries the CUE path of the offending value
//	}
//
// Errors from CUE are flattened by FormatError into "file: path: message" lines
// using JSON-path notation (leaves[3].value).
package cueutil
