// SPDX-License-Identifier: MPL-2.0

// Package document turns streams of leaf tokens into validated scalar fields.
//
// It is the boundary between a tree walker, which discovers leaf elements and
// their raw text, and the scalar rules held by a sealed registry. Decoding is
// all-or-nothing: the first leaf that cannot be resolved or validated aborts
// the whole document.
package document

import (
	"fmt"
	"strconv"

	"github.com/ben-isaac/pcg-gazebo/pkg/registry"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"

	"github.com/charmbracelet/log"
)

type (
	// Leaf is one raw leaf token as delivered by a tree walker.
	Leaf struct {
		// Tag is the element or attribute name.
		Tag string
		// Text is the raw text content.
		Text string
		// Path is the element path inside the document (optional).
		Path string
		// Line is the 1-based source line (optional, 0 when unknown).
		Line int
	}

	// Field is a validated leaf.
	Field struct {
		Leaf   Leaf
		Scalar *scalar.Scalar
	}

	// Document is the validated result of decoding every leaf of one source.
	Document struct {
		Source  string
		Dialect string
		Fields  []Field
	}

	// DecodeError reports the leaf that aborted decoding. The wrapped error is a
	// *registry.UnknownFieldError, *scalar.TypeError, *scalar.SyntaxError or
	// *scalar.ValidationError; its text names the field and the violated constraint.
	DecodeError struct {
		Source  string
		Dialect string
		Index   int
		Leaf    Leaf
		Err     error
	}

	// Decoder resolves leaves against a sealed registry.
	Decoder struct {
		reg    *registry.Registry
		logger *log.Logger
	}

	// Option configures a Decoder.
	Option func(*Decoder)
)

// WithLogger sets the logger used for per-leaf debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// NewDecoder returns a Decoder backed by reg.
func NewDecoder(reg *registry.Registry, opts ...Option) *Decoder {
	d := &Decoder{reg: reg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the decoder resolves against.
func (d *Decoder) Registry() *registry.Registry { return d.reg }

// DecodeLeaf resolves leaf.Tag in dialect and assigns leaf.Text to a fresh scalar.
func (d *Decoder) DecodeLeaf(dialect string, leaf Leaf) (*scalar.Scalar, error) {
	s, err := d.reg.New(leaf.Tag, dialect)
	if err != nil {
		return nil, err
	}
	if err := s.AssignText(leaf.Text); err != nil {
		return nil, err
	}
	return s, nil
}

// Decode validates every leaf of a document. It stops at the first failure and
// returns a *DecodeError; no partially decoded document is ever returned.
func (d *Decoder) Decode(source, dialect string, leaves []Leaf) (*Document, error) {
	doc := &Document{
		Source:  source,
		Dialect: dialect,
		Fields:  make([]Field, 0, len(leaves)),
	}
	for i, leaf := range leaves {
		s, err := d.DecodeLeaf(dialect, leaf)
		if err != nil {
			if d.logger != nil {
				d.logger.Debug("leaf rejected", "source", source, "tag", leaf.Tag, "text", leaf.Text, "error", err)
			}
			return nil, &DecodeError{Source: source, Dialect: dialect, Index: i, Leaf: leaf, Err: err}
		}
		if d.logger != nil {
			d.logger.Debug("leaf accepted", "source", source, "tag", leaf.Tag, "value", s.Render())
		}
		doc.Fields = append(doc.Fields, Field{Leaf: leaf, Scalar: s})
	}
	return doc, nil
}

// Encode renders every field back to a leaf carrying canonical text.
func (doc *Document) Encode() []Leaf {
	out := make([]Leaf, len(doc.Fields))
	for i, f := range doc.Fields {
		out[i] = Leaf{Tag: f.Leaf.Tag, Text: f.Scalar.Render(), Path: f.Leaf.Path, Line: f.Leaf.Line}
	}
	return out
}

// Lookup returns the fields whose tag is tag, in document order.
func (doc *Document) Lookup(tag string) []Field {
	var out []Field
	for _, f := range doc.Fields {
		if f.Leaf.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// Location formats the leaf position as "source:line", "source:path" or "source#index".
func (e *DecodeError) Location() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	switch {
	case e.Leaf.Line > 0:
		return src + ":" + strconv.Itoa(e.Leaf.Line)
	case e.Leaf.Path != "":
		return src + ":" + e.Leaf.Path
	default:
		return src + "#" + strconv.Itoa(e.Index)
	}
}

// Error implements the error interface. The message carries the location, the
// field name, the attempted raw value and the cause.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: field %q = %q: %v", e.Location(), e.Leaf.Tag, e.Leaf.Text, e.Err)
}

// Unwrap returns the underlying resolution or validation error.
func (e *DecodeError) Unwrap() error { return e.Err }
