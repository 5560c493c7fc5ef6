// Package headerset holds the read-only identifier set records are filtered
// against. A Set is built once, before any worker starts, and is never
// mutated afterwards, so concurrent Contains calls need no locking.
package headerset

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

// FilePrefix forces a header source to be read as a file.
const FilePrefix = "@"

// Set is an immutable, deduplicated collection of identifiers.
type Set struct {
	ids map[string]struct{}
}

// New builds a Set from ids. Surrounding whitespace is trimmed and blank
// entries are dropped; identifiers are not otherwise validated.
func New(ids []string) *Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		m[id] = struct{}{}
	}
	return &Set{ids: m}
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the identifiers in sorted order.
func (s *Set) IDs() []string {
	out := make([]string, 0, s.Len())
	if s == nil {
		return out
	}
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadFile reads one identifier per line. Lines are trimmed, blank lines are
// skipped, and the remaining lines are returned in file order (duplicates kept).
func LoadFile(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open headers file %s: %w", perrors.ErrConfig, path, err)
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var out []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read headers file %s: %w", perrors.ErrConfig, path, err)
	}
	return out, nil
}

// FromFile is New(LoadFile(path)).
func FromFile(path string) (*Set, error) {
	ids, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(ids), nil
}

// Resolve interprets a header source string:
//
//	"@path"   always a file of identifiers
//	"path"    a file, when something exists at that path
//	"a,b,c"   otherwise a comma-separated list
//
// An existing path wins over comma splitting, so a literal list that happens
// to name a file is read from that file.
func Resolve(source string) (*Set, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty header source", perrors.ErrConfig)
	}
	if rest, ok := strings.CutPrefix(source, FilePrefix); ok {
		return FromFile(rest)
	}
	if _, err := os.Stat(source); err == nil {
		return FromFile(source)
	}
	return New(strings.Split(source, ",")), nil
}
