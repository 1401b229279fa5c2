// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/sdfscalar/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/sdfscalar/config.cue on macOS,
// %APPDATA%\sdfscalar\config.cue on Windows), then from ./config.cue. It selects the
// default dialect, the log level, UI settings, and user rules that are registered
// after the built-in scalar catalog.
//
// Files are validated against an embedded CUE schema (config_schema.cue). Environment
// variables prefixed with SDFSCALAR_ override file values and are validated in Go.
package config
