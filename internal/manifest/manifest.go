// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and writes leaf manifests: the (tag, raw text) tokens
// of one scene document, as a tree walker would deliver them, stored in CUE or
// TOML. CUE manifests are validated against an embedded schema (#Manifest);
// TOML manifests are decoded strictly and checked field by field.
package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/internal/document"
	"github.com/ben-isaac/pcg-gazebo/pkg/cueutil"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatCUE is a CUE manifest (*.cue).
	FormatCUE Format = "cue"
	// FormatTOML is a TOML manifest (*.toml).
	FormatTOML Format = "toml"
)

//go:embed manifest_schema.cue
var manifestSchema string

var (
	// ErrUnsupportedFormat is returned for files whose extension is neither .cue nor .toml.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	// ErrInvalidLeaf is the sentinel error wrapped by InvalidLeafError.
	ErrInvalidLeaf = errors.New("invalid manifest leaf")
)

type (
	// Format identifies the encoding of a manifest file.
	Format string

	// Manifest is a decoded leaf manifest.
	Manifest struct {
		// Source names the scene document; defaults to the manifest path.
		Source string
		// Dialect is empty when the file does not declare one.
		Dialect string
		Leaves  []document.Leaf
	}

	// InvalidLeafError is returned when a leaf entry is structurally unusable,
	// e.g. a missing tag or a value that is neither a number nor a string.
	InvalidLeafError struct {
		File   string
		Index  int
		Reason string
	}

	fileLeaf struct {
		Tag   string `json:"tag" toml:"tag"`
		Value any    `json:"value" toml:"value"`
		Path  string `json:"path,omitempty" toml:"path,omitempty"`
		Line  int    `json:"line,omitempty" toml:"line,omitempty"`
	}

	fileManifest struct {
		Source  string     `json:"source,omitempty" toml:"source,omitempty"`
		Dialect string     `json:"dialect,omitempty" toml:"dialect,omitempty"`
		Leaves  []fileLeaf `json:"leaves" toml:"leaves"`
	}
)

// Error implements the error interface.
func (e *InvalidLeafError) Error() string {
	return fmt.Sprintf("%s: leaves[%d]: %s", e.File, e.Index, e.Reason)
}

// Unwrap returns ErrInvalidLeaf for errors.Is() compatibility.
func (e *InvalidLeafError) Unwrap() error { return ErrInvalidLeaf }

// FormatFor returns the manifest format implied by the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s (expected .cue or .toml)", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data, path, format)
}

// Parse decodes manifest content. path is used for error messages and as the
// default Source.
func Parse(data []byte, path string, format Format) (*Manifest, error) {
	var (
		raw *fileManifest
		err error
	)
	switch format {
	case FormatCUE:
		raw, err = parseCUE(data, path)
	case FormatTOML:
		raw, err = parseTOML(data, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return raw.toManifest(path)
}

func parseCUE(data []byte, path string) (*fileManifest, error) {
	result, err := cueutil.ParseAndDecodeString[fileManifest](
		manifestSchema,
		data,
		"#Manifest",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func parseTOML(data []byte, path string) (*fileManifest, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}
	var raw fileManifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &raw, nil
}

func (f *fileManifest) toManifest(path string) (*Manifest, error) {
	m := &Manifest{
		Source:  f.Source,
		Dialect: f.Dialect,
		Leaves:  make([]document.Leaf, 0, len(f.Leaves)),
	}
	if m.Source == "" {
		m.Source = path
	}
	for i, l := range f.Leaves {
		if strings.TrimSpace(l.Tag) == "" {
			return nil, &InvalidLeafError{File: path, Index: i, Reason: "tag must be non-empty"}
		}
		if l.Line < 0 {
			return nil, &InvalidLeafError{File: path, Index: i, Reason: fmt.Sprintf("line %d must be positive", l.Line)}
		}
		text, err := leafText(l.Value)
		if err != nil {
			return nil, &InvalidLeafError{File: path, Index: i, Reason: err.Error()}
		}
		m.Leaves = append(m.Leaves, document.Leaf{Tag: l.Tag, Text: text, Path: l.Path, Line: l.Line})
	}
	return m, nil
}

// leafText turns a decoded manifest value into the raw text a tree walker
// would have produced. Strings are kept verbatim; numbers are rendered in
// canonical form.
func leafText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	n, err := scalar.FromValue(v)
	if err != nil {
		return "", fmt.Errorf("value must be a number or a string: %w", err)
	}
	return scalar.Format(n), nil
}

// DialectOr returns the manifest dialect, or fallback when the file declares none.
func (m *Manifest) DialectOr(fallback string) string {
	if m.Dialect != "" {
		return m.Dialect
	}
	return fallback
}
