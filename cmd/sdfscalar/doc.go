// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for sdfscalar.
//
// The root command wires the configuration provider, the logger and the
// sealed rule registry into an App; every subcommand receives that App and
// writes through its stdout/stderr so tests can capture the output.
package cmd
