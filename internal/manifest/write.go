// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/internal/document"

	"github.com/pelletier/go-toml/v2"
)

// FromDocument builds a manifest holding the canonical text of every field.
func FromDocument(doc *document.Document) *Manifest {
	return &Manifest{
		Source:  doc.Source,
		Dialect: doc.Dialect,
		Leaves:  doc.Encode(),
	}
}

// Write encodes m in the given format. Values are always written as strings
// so the integer/float distinction of the canonical text survives.
func Write(w io.Writer, m *Manifest, format Format) error {
	switch format {
	case FormatCUE:
		_, err := io.WriteString(w, GenerateCUE(m))
		return err
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(toFile(m))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// GenerateCUE renders m as CUE source that validates against #Manifest.
func GenerateCUE(m *Manifest) string {
	var sb strings.Builder

	sb.WriteString("// Leaf manifest generated by sdfscalar\n\n")
	if m.Source != "" {
		sb.WriteString("source:  " + strconv.Quote(m.Source) + "\n")
	}
	if m.Dialect != "" {
		sb.WriteString("dialect: " + strconv.Quote(m.Dialect) + "\n")
	}
	if len(m.Leaves) == 0 {
		sb.WriteString("leaves: []\n")
		return sb.String()
	}

	sb.WriteString("leaves: [\n")
	for _, l := range m.Leaves {
		fmt.Fprintf(&sb, "\t{tag: %s, value: %s", strconv.Quote(l.Tag), strconv.Quote(l.Text))
		if l.Path != "" {
			fmt.Fprintf(&sb, ", path: %s", strconv.Quote(l.Path))
		}
		if l.Line > 0 {
			fmt.Fprintf(&sb, ", line: %d", l.Line)
		}
		sb.WriteString("},\n")
	}
	sb.WriteString("]\n")
	return sb.String()
}

func toFile(m *Manifest) *fileManifest {
	f := &fileManifest{
		Source:  m.Source,
		Dialect: m.Dialect,
		Leaves:  make([]fileLeaf, len(m.Leaves)),
	}
	for i, l := range m.Leaves {
		f.Leaves[i] = fileLeaf{Tag: l.Tag, Value: l.Text, Path: l.Path, Line: l.Line}
	}
	return f
}
