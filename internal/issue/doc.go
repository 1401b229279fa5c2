// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource and remediation hints.
// The issue catalog holds Markdown help pages, rendered with glamour by
// `sdfscalar explain`, and ForError maps validation errors to their page.
package issue
