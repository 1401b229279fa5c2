// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	dialect: *"sdf" | string
	leaves: [...#Leaf]
}

#Leaf: {
	tag:   string & !=""
	value: number | string
	line?: int & >0
}
`

type testLeaf struct {
	Tag   string `json:"tag"`
	Value any    `json:"value"`
	Line  int    `json:"line,omitempty"`
}

type testDoc struct {
	Dialect string     `json:"dialect"`
	Leaves  []testLeaf `json:"leaves"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid document decodes", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
leaves: [
	{tag: "angular", value: 0.5, line: 3},
	{tag: "iters", value: 50},
	{tag: "mass", value: "2.5"},
]
`)
		result, err := ParseAndDecode[testDoc]([]byte(testSchema), data, "#Doc", WithFilename("robot.leaves.cue"))
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		doc := result.Value
		if doc.Dialect != "sdf" {
			t.Errorf("Dialect = %q, want default %q", doc.Dialect, "sdf")
		}
		if len(doc.Leaves) != 3 {
			t.Fatalf("len(Leaves) = %d, want 3", len(doc.Leaves))
		}
		if v, ok := doc.Leaves[0].Value.(float64); !ok || v != 0.5 {
			t.Errorf("Leaves[0].Value = %#v, want float64 0.5", doc.Leaves[0].Value)
		}
		if v, ok := doc.Leaves[1].Value.(int64); !ok || v != 50 {
			t.Errorf("Leaves[1].Value = %#v, want int64 50", doc.Leaves[1].Value)
		}
		if v, ok := doc.Leaves[2].Value.(string); !ok || v != "2.5" {
			t.Errorf("Leaves[2].Value = %#v, want string 2.5", doc.Leaves[2].Value)
		}
		if !result.Unified.Exists() {
			t.Error("Unified value should exist")
		}
	})

	t.Run("schema violation reports json path", func(t *testing.T) {
		t.Parallel()

		data := []byte(`leaves: [{tag: "angular", value: 0.5}, {tag: "", value: 1}]`)
		_, err := ParseAndDecode[testDoc]([]byte(testSchema), data, "#Doc", WithFilename("bad.cue"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "bad.cue") {
			t.Errorf("error should contain filename, got: %v", err)
		}
		if !strings.Contains(err.Error(), "leaves[1].tag") {
			t.Errorf("error should contain the JSON path, got: %v", err)
		}
	})

	t.Run("boolean value is rejected by schema", func(t *testing.T) {
		t.Parallel()

		data := []byte(`leaves: [{tag: "angular", value: true}]`)
		if _, err := ParseAndDecode[testDoc]([]byte(testSchema), data, "#Doc"); err == nil {
			t.Fatal("expected error for boolean value")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		data := []byte(`leaves: [{tag: "angular"`)
		_, err := ParseAndDecode[testDoc]([]byte(testSchema), data, "#Doc")
		if err == nil {
			t.Fatal("expected syntax error")
		}
		if !strings.Contains(err.Error(), "<input>") {
			t.Errorf("error should use the default filename, got: %v", err)
		}
	})

	t.Run("missing definition is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[testDoc]([]byte(testSchema), []byte(`leaves: []`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Errorf("expected internal error, got: %v", err)
		}
	})

	t.Run("file size limit", func(t *testing.T) {
		t.Parallel()

		data := []byte(`leaves: []` + strings.Repeat(" ", 64))
		_, err := ParseAndDecode[testDoc]([]byte(testSchema), data, "#Doc", WithMaxFileSize(16))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("expected size error, got: %v", err)
		}
	})
}

func TestUnify_NonConcrete(t *testing.T) {
	t.Parallel()

	schema := `#Cfg: { dialect?: string, level?: "debug" | "info" }`

	if _, err := Unify([]byte(schema), []byte(`level: "info"`), "#Cfg", WithConcrete(false)); err != nil {
		t.Fatalf("Unify() unexpected error: %v", err)
	}
	if _, err := Unify([]byte(schema), []byte(`level: "loud"`), "#Cfg", WithConcrete(false)); err == nil {
		t.Fatal("Unify() expected error for disallowed value")
	}
}

func TestParseAndDecodeString(t *testing.T) {
	t.Parallel()

	result, err := ParseAndDecodeString[testDoc](testSchema, []byte(`dialect: "urdf", leaves: []`), "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecodeString failed: %v", err)
	}
	if result.Value.Dialect != "urdf" {
		t.Errorf("Dialect = %q, want %q", result.Value.Dialect, "urdf")
	}
}
