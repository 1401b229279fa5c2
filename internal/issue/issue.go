// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/internal/manifest"
	"github.com/ben-isaac/pcg-gazebo/pkg/registry"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Issue identifiers. Values are stable; new issues are appended.
const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	UnknownFieldId
	ValueOutOfRangeId
	NotScalarId
	InvalidRuleId
	DuplicateRuleId
	ConfigLoadFailedId
)

type (
	// Id identifies an issue page.
	Id int

	// MarkdownMsg is the Markdown body of an issue page.
	MarkdownMsg string

	// HttpLink is an external reference shown under "See also".
	HttpLink string

	// Issue is a help page explaining one class of failure.
	Issue struct {
		id       Id
		name     string      // kebab-case name accepted by `sdfscalar explain`
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// Name returns the kebab-case issue name.
func (i *Issue) Name() string {
	return i.name
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the reference links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Markdown returns the full page, including the "See also" section.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the page with the given glamour style ("auto", "dark",
// "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id:   ManifestNotFoundId,
		name: "manifest-not-found",
		mdMsg: `
# Manifest not found!

The leaf manifest you passed could not be read.

## Things you can try:
- Check the path for typos
- Manifests must end in ` + "`.cue`" + ` or ` + "`.toml`" + `
- List the current directory:
~~~
$ ls *.cue *.toml
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id:   ManifestParseErrorId,
		name: "manifest-parse-error",
		mdMsg: `
# Failed to parse manifest!

The manifest is not valid CUE/TOML, or it does not match the manifest schema.

## Every leaf needs:
- **tag**: the element name, e.g. ` + "`angular`" + `
- **value**: a number or the raw text of the element

and may carry **path** and **line** for error locations.

## Example:
~~~cue
source:  "robot.sdf"
dialect: "sdf"
leaves: [
	{tag: "angular", value: 0.5, line: 12},
	{tag: "mass", value: "2.0", path: "model/link/inertial/mass"},
]
~~~

~~~toml
dialect = "urdf"

[[leaves]]
tag = "effort"
value = 30
~~~`,
	}

	unknownFieldIssue = &Issue{
		id:   UnknownFieldId,
		name: "unknown-field",
		mdMsg: `
# Unknown field!

The tag has no registered rule in the document's dialect. Rules are keyed by
**(name, dialect)**: ` + "`mu1`" + ` exists in ` + "`urdf`" + ` but not in ` + "`sdf`" + `.

## Things you can try:
- Check the dialect of the manifest, or pass ` + "`--dialect`" + `
- List the rules of a dialect:
~~~
$ sdfscalar rules --dialect sdf
~~~
- Declare the field in your configuration:
~~~cue
rules: [
	{name: "wheel_count", dialect: "rover", kind: "int", default: 4, min: 1},
]
~~~`,
	}

	valueOutOfRangeIssue = &Issue{
		id:   ValueOutOfRangeId,
		name: "value-out-of-range",
		mdMsg: `
# Value out of range!

The value parsed as a number but violates the domain of its field. The error
names the field and the constraint, e.g.

~~~
angular (sdf): value 1.5 violates constraint: must be in range [0, 1]
~~~

## Things you can try:
- Show the domain and default of the field:
~~~
$ sdfscalar rules --dialect sdf
~~~
- Remove the element to fall back to its default`,
		docLinks: []HttpLink{"http://sdformat.org/spec"},
	}

	notScalarIssue = &Issue{
		id:   NotScalarId,
		name: "not-scalar",
		mdMsg: `
# Value is not a number!

The field accepts a single finite number. Lists, booleans, words, NaN and
infinities are rejected. Fields that count things (iterations, samples,
contacts) accept integers only; ` + "`50.0`" + ` is rejected where ` + "`50`" + ` is expected.`,
	}

	invalidRuleIssue = &Issue{
		id:   InvalidRuleId,
		name: "invalid-rule",
		mdMsg: `
# Invalid rule!

A configured rule cannot be registered. Each rule needs a name, a dialect and
a default that satisfies its own kind and bounds.

## Example:
~~~cue
rules: [
	{name: "slip", dialect: "rover", kind: "float", default: 0.0, min: -1, max: 1},
]
~~~`,
	}

	duplicateRuleIssue = &Issue{
		id:   DuplicateRuleId,
		name: "duplicate-rule",
		mdMsg: `
# Duplicate rule!

A rule with the same **(name, dialect)** is already registered. Built-in rules
cannot be replaced from the configuration; pick another name or dialect.`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config-load-failed",
		mdMsg: `
# Failed to load configuration!

## Configuration file locations:
- Linux: ~/.config/sdfscalar/config.cue
- macOS: ~/Library/Application Support/sdfscalar/config.cue
- Windows: %APPDATA%\sdfscalar\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ sdfscalar config init
~~~
- Remove the config file to use defaults

## Example configuration:
~~~cue
dialect: "sdf"
log: level: "info"
ui: {
	color_scheme: "auto"
	verbose:      false
}
~~~`,
	}

	issues = []*Issue{
		manifestNotFoundIssue,
		manifestParseErrorIssue,
		unknownFieldIssue,
		valueOutOfRangeIssue,
		notScalarIssue,
		invalidRuleIssue,
		duplicateRuleIssue,
		configLoadFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := slices.Clone(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	for _, i := range issues {
		if i.id == id {
			return i
		}
	}
	return nil
}

// Lookup returns the issue with the given kebab-case name.
func Lookup(name string) (*Issue, bool) {
	idx := slices.IndexFunc(issues, func(i *Issue) bool { return i.name == name })
	if idx < 0 {
		return nil, false
	}
	return issues[idx], true
}

// Names returns every issue name, sorted.
func Names() []string {
	names := make([]string, len(issues))
	for i, is := range issues {
		names[i] = is.name
	}
	slices.Sort(names)
	return names
}

// ForError picks the issue page that explains err, or nil when none applies.
// Rule and lookup failures are checked before value failures, since an
// invalid rule wraps the value error of its default.
func ForError(err error) *Issue {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrDuplicateRule):
		return duplicateRuleIssue
	case errors.Is(err, scalar.ErrInvalidRule):
		return invalidRuleIssue
	case errors.Is(err, registry.ErrUnknownField):
		return unknownFieldIssue
	case errors.Is(err, scalar.ErrValidation):
		return valueOutOfRangeIssue
	case errors.Is(err, scalar.ErrNotScalar):
		return notScalarIssue
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, manifest.ErrUnsupportedFormat):
		return manifestNotFoundIssue
	case errors.Is(err, manifest.ErrInvalidLeaf):
		return manifestParseErrorIssue
	default:
		return nil
	}
}
