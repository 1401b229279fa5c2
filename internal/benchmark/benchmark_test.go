// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ben-isaac/pcg-gazebo/internal/document"
	"github.com/ben-isaac/pcg-gazebo/internal/manifest"
	"github.com/ben-isaac/pcg-gazebo/internal/testutil"
	"github.com/ben-isaac/pcg-gazebo/pkg/registry"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
	"github.com/ben-isaac/pcg-gazebo/pkg/sdf"
)

// leafCount is the size of the generated documents. A detailed world file
// carries a few hundred numeric leaves.
const leafCount = 400

// sampleLeaves cycles through a representative mix of tags: fractions,
// friction, stiffness in exponent notation and integer-only solver settings.
var sampleLeaves = []document.Leaf{
	{Tag: "angular", Text: "0.05"},
	{Tag: "linear", Text: "0.1"},
	{Tag: "mu", Text: "1.0"},
	{Tag: "mu2", Text: "0.8"},
	{Tag: "kp", Text: "1e12"},
	{Tag: "kd", Text: "1"},
	{Tag: "mass", Text: "2.5"},
	{Tag: "iters", Text: "50"},
	{Tag: "effort", Text: "-1"},
	{Tag: "restitution_coefficient", Text: "0"},
}

func mustRegistry(b *testing.B) *registry.Registry {
	b.Helper()
	reg, err := sdf.NewRegistry()
	if err != nil {
		b.Fatalf("NewRegistry failed: %v", err)
	}
	return reg
}

func generateLeaves(n int) []document.Leaf {
	leaves := make([]document.Leaf, n)
	for i := range leaves {
		leaves[i] = sampleLeaves[i%len(sampleLeaves)]
		leaves[i].Line = i + 1
	}
	return leaves
}

func generateCUE(n int) string {
	var sb strings.Builder
	sb.WriteString("source: \"bench.sdf\"\ndialect: \"sdf\"\nleaves: [\n")
	for i, l := range generateLeaves(n) {
		fmt.Fprintf(&sb, "\t{tag: %q, value: %q, line: %d},\n", l.Tag, l.Text, i+1)
	}
	sb.WriteString("]\n")
	return sb.String()
}

func generateTOML(n int) string {
	var sb strings.Builder
	sb.WriteString("source = \"bench.sdf\"\ndialect = \"sdf\"\n")
	for i, l := range generateLeaves(n) {
		fmt.Fprintf(&sb, "\n[[leaves]]\ntag = %q\nvalue = %q\nline = %d\n", l.Tag, l.Text, i+1)
	}
	return sb.String()
}

// BenchmarkParseText benchmarks numeric literal classification and parsing.
func BenchmarkParseText(b *testing.B) {
	texts := []string{"0", "-1", "0.05", "1e12", "  2.5 ", "640", "1.047"}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, text := range texts {
			if _, err := scalar.ParseText(text); err != nil {
				b.Fatalf("ParseText(%q) failed: %v", text, err)
			}
		}
	}
}

// BenchmarkFormat benchmarks canonical rendering of ints and floats.
func BenchmarkFormat(b *testing.B) {
	numbers := []scalar.Number{scalar.Int(50), scalar.Int(-1), scalar.Float(0.05), scalar.Float(1e12), scalar.Float(2)}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, n := range numbers {
			_ = scalar.Format(n)
		}
	}
}

// BenchmarkRegistryNew benchmarks tag resolution plus scalar construction.
func BenchmarkRegistryNew(b *testing.B) {
	reg := mustRegistry(b)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, l := range sampleLeaves {
			if _, err := reg.New(l.Tag, sdf.DialectSDF); err != nil {
				b.Fatalf("New(%q) failed: %v", l.Tag, err)
			}
		}
	}
}

// BenchmarkRegistryResolveParallel exercises concurrent reads of the sealed
// registry.
func BenchmarkRegistryResolveParallel(b *testing.B) {
	reg := mustRegistry(b)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			l := sampleLeaves[i%len(sampleLeaves)]
			if _, err := reg.Resolve(l.Tag, sdf.DialectSDF); err != nil {
				b.Errorf("Resolve(%q) failed: %v", l.Tag, err)
				return
			}
			i++
		}
	})
}

// BenchmarkDecode benchmarks validating a whole document.
func BenchmarkDecode(b *testing.B) {
	dec := document.NewDecoder(mustRegistry(b))
	leaves := generateLeaves(leafCount)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := dec.Decode("bench.sdf", sdf.DialectSDF, leaves); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}

// BenchmarkManifestParseCUE benchmarks CUE schema unification of a manifest.
// This exercises the hot path in pkg/cueutil.
func BenchmarkManifestParseCUE(b *testing.B) {
	data := []byte(generateCUE(leafCount))

	b.ResetTimer()
	for b.Loop() {
		if _, err := manifest.Parse(data, "bench.cue", manifest.FormatCUE); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}

// BenchmarkManifestParseTOML benchmarks strict TOML decoding of a manifest.
func BenchmarkManifestParseTOML(b *testing.B) {
	data := []byte(generateTOML(leafCount))

	b.ResetTimer()
	for b.Loop() {
		if _, err := manifest.Parse(data, "bench.toml", manifest.FormatTOML); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}

// BenchmarkFullPipeline benchmarks load, decode and re-encode of a manifest
// on disk, as `sdfscalar validate --emit` does.
func BenchmarkFullPipeline(b *testing.B) {
	path := testutil.MustWriteFile(b, b.TempDir(), "bench.toml", generateTOML(leafCount))
	dec := document.NewDecoder(mustRegistry(b))

	b.ResetTimer()
	for b.Loop() {
		m, err := manifest.Load(path)
		if err != nil {
			b.Fatalf("Load failed: %v", err)
		}
		doc, err := dec.Decode(m.Source, m.DialectOr(sdf.DialectSDF), m.Leaves)
		if err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
		if got := len(manifest.FromDocument(doc).Leaves); got != leafCount {
			b.Fatalf("encoded %d leaves, want %d", got, leafCount)
		}
	}
}

// TestGeneratedManifestsDecode keeps the generated inputs valid, so the
// benchmarks never measure an early rejection.
func TestGeneratedManifestsDecode(t *testing.T) {
	t.Parallel()

	reg, err := sdf.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	dec := document.NewDecoder(reg)

	for _, tc := range []struct {
		name    string
		content string
	}{
		{"bench.cue", generateCUE(25)},
		{"bench.toml", generateTOML(25)},
	} {
		path := testutil.MustWriteFile(t, t.TempDir(), tc.name, tc.content)
		m, err := manifest.Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", filepath.Base(path), err)
		}
		if _, err := dec.Decode(m.Source, m.DialectOr(sdf.DialectSDF), m.Leaves); err != nil {
			t.Errorf("Decode(%s) failed: %v", tc.name, err)
		}
	}
}
