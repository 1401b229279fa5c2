// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slices"
)

var (
	// ErrBadPattern is returned for malformed glob patterns.
	ErrBadPattern = errors.New("bad manifest pattern")
	// ErrNoMatch is returned when a pattern matches no manifest.
	ErrNoMatch = errors.New("pattern matches no manifest")
)

// Expand resolves manifest arguments. Plain paths are kept as given, even
// when they do not exist, so Load reports them. Patterns containing glob
// metacharacters ("models/**/*.cue") are expanded to the sorted .cue and
// .toml files they match. Duplicates are dropped, keeping the first
// occurrence.
func Expand(args []string) ([]string, error) {
	var out []string
	add := func(p string) {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !IsPattern(arg) {
			add(arg)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, arg, err)
		}
		slices.Sort(matches)
		found := false
		for _, m := range matches {
			if _, err := FormatFor(m); err != nil {
				continue
			}
			add(m)
			found = true
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrNoMatch, arg)
		}
	}
	return out, nil
}

// IsPattern reports whether arg contains glob metacharacters.
func IsPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
