// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the validation hot paths, used to
// generate PGO profiles:
//   - numeric literal parsing and canonical rendering
//   - registry resolution, sequential and concurrent
//   - manifest parsing (CUE schema unification and TOML decoding)
//   - whole-document decoding and re-encoding
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
