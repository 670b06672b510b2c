package comments

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"vctag/internal/services"
)

// Pair is a single vorbis comment field.
type Pair struct {
	Name  string
	Value string
}

// String renders the pair in the tool's name=value wire form.
func (p Pair) String() string {
	return p.Name + "=" + p.Value
}

// Set is an ordered sequence of pairs, the canonical form used to build
// vorbiscomment arguments. Multiple pairs may share a name.
type Set []Pair

// Grouped maps a field name to its values in listing order.
type Grouped map[string][]string

// Names returns the grouped field names in sorted order.
func (g Grouped) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type sourceKind int

const (
	kindNone sourceKind = iota
	kindFile
	kindLines
	kindPairs
	kindMap
	kindGroups
)

// Source selects where comment data comes from. Construct one with
// FromFile, FromLines, FromPairs, FromMap, or FromGroups. The zero value
// resolves to an empty-input error.
type Source struct {
	kind   sourceKind
	path   string
	lines  []string
	pairs  Set
	scalar map[string]string
	groups map[string][]string
}

// FromFile wraps a comments file of newline-delimited name=value lines.
// The file is validated locally but its content is handed to the external
// tool verbatim through its import flag.
func FromFile(path string) Source {
	return Source{kind: kindFile, path: path}
}

// FromLines wraps a flat list of pre-formatted name=value strings.
func FromLines(lines []string) Source {
	return Source{kind: kindLines, lines: lines}
}

// FromPairs wraps already-canonical pairs, preserving their order.
func FromPairs(pairs []Pair) Source {
	return Source{kind: kindPairs, pairs: Set(pairs)}
}

// FromMap wraps a keyed mapping with one value per name.
func FromMap(values map[string]string) Source {
	return Source{kind: kindMap, scalar: values}
}

// FromGroups wraps a keyed mapping with a list of values per name. Every
// list must be non-empty.
func FromGroups(groups map[string][]string) Source {
	return Source{kind: kindGroups, groups: groups}
}

// IsFile reports whether the source is an import file delegated to the
// external tool rather than resolved in memory.
func (s Source) IsFile() bool {
	return s.kind == kindFile
}

// Path returns the import file path for file sources, "" otherwise.
func (s Source) Path() string {
	return s.path
}

// Pairs resolves an in-memory source into the canonical sanitized set.
// Flat lists and pair slices preserve input order; keyed mappings are
// emitted in sorted name order with per-name value order preserved.
func (s Source) Pairs() (Set, error) {
	switch s.kind {
	case kindLines:
		if len(s.lines) == 0 {
			return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", "no tag entries supplied", nil)
		}
		out := make(Set, 0, len(s.lines))
		for _, line := range s.lines {
			pair, err := ParsePair(line)
			if err != nil {
				return nil, err
			}
			out = append(out, pair)
		}
		return out, nil
	case kindPairs:
		if len(s.pairs) == 0 {
			return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", "no tag pairs supplied", nil)
		}
		out := make(Set, 0, len(s.pairs))
		for _, pair := range s.pairs {
			clean, err := sanitizePair(pair)
			if err != nil {
				return nil, err
			}
			out = append(out, clean)
		}
		return out, nil
	case kindMap:
		if len(s.scalar) == 0 {
			return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", "no tag entries supplied", nil)
		}
		names := make([]string, 0, len(s.scalar))
		for name := range s.scalar {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make(Set, 0, len(names))
		for _, name := range names {
			clean, err := sanitizePair(Pair{Name: name, Value: s.scalar[name]})
			if err != nil {
				return nil, err
			}
			out = append(out, clean)
		}
		return out, nil
	case kindGroups:
		if len(s.groups) == 0 {
			return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", "no tag entries supplied", nil)
		}
		names := make([]string, 0, len(s.groups))
		for name := range s.groups {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make(Set, 0, len(names))
		for _, name := range names {
			values := s.groups[name]
			if len(values) == 0 {
				return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", fmt.Sprintf("tag %q has no values", name), nil)
			}
			for _, value := range values {
				clean, err := sanitizePair(Pair{Name: name, Value: value})
				if err != nil {
					return nil, err
				}
				out = append(out, clean)
			}
		}
		return out, nil
	case kindFile:
		return nil, errors.New("file sources are delegated to the external tool and carry no in-memory pairs")
	default:
		return nil, services.Wrap(services.ErrEmptyInput, "comments", "normalize", "no source supplied", nil)
	}
}

// ValidateFile checks a comments file before it is handed to the external
// tool: the file must exist, be readable, contain at least one non-blank
// line, and every non-blank line must carry a name=value separator. It
// returns the number of tag lines found. The file content itself is never
// rewritten.
func ValidateFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return 0, services.Wrap(services.ErrNotFound, "comments", "validate", fmt.Sprintf("%s is not a file", path), nil)
		case errors.Is(err, fs.ErrPermission):
			return 0, services.Wrap(services.ErrNotReadable, "comments", "validate", fmt.Sprintf("%s is not readable", path), nil)
		default:
			return 0, services.Wrap(services.ErrNotReadable, "comments", "validate", "", err)
		}
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.Contains(line, "=") {
			return 0, services.Wrap(services.ErrMalformedLine, "comments", "validate", fmt.Sprintf("line %q has no separator", line), nil)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, services.Wrap(services.ErrNotReadable, "comments", "validate", "", err)
	}
	if count == 0 {
		return 0, services.Wrap(services.ErrEmptyInput, "comments", "validate", fmt.Sprintf("%s contains no tag lines", path), nil)
	}
	return count, nil
}
