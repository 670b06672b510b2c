package comments

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"vctag/internal/services"
)

// ParsePair splits a raw name=value entry on the first separator and
// sanitizes both halves.
func ParsePair(raw string) (Pair, error) {
	name, value, found := strings.Cut(raw, "=")
	if !found {
		return Pair{}, services.Wrap(services.ErrMalformedLine, "comments", "parse", fmt.Sprintf("entry %q has no separator", raw), nil)
	}
	return sanitizePair(Pair{Name: name, Value: value})
}

// ParseLine splits one line of vorbiscomment list output on the first
// separator, trimming surrounding whitespace from both halves. Unlike
// ParsePair it does not sanitize: output lines are reported as the tool
// printed them.
func ParseLine(line string) (Pair, error) {
	name, value, found := strings.Cut(line, "=")
	if !found {
		return Pair{}, services.Wrap(services.ErrMalformedLine, "comments", "parse", fmt.Sprintf("output line %q has no separator", line), nil)
	}
	return Pair{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}, nil
}

// Group folds list-output lines into a name-to-values mapping, preserving
// per-name value order. Blank lines are ignored; a line without a
// separator is a malformed-line error.
func Group(lines []string) (Grouped, error) {
	grouped := make(Grouped)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pair, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		grouped[pair.Name] = append(grouped[pair.Name], pair.Value)
	}
	return grouped, nil
}

func sanitizePair(pair Pair) (Pair, error) {
	name := sanitizeName(pair.Name)
	value := sanitizeValue(pair.Value)
	if name == "" {
		return Pair{}, services.Wrap(services.ErrMalformedLine, "comments", "sanitize", fmt.Sprintf("entry %q has an empty name", pair.String()), nil)
	}
	if value == "" {
		return Pair{}, services.Wrap(services.ErrMalformedLine, "comments", "sanitize", fmt.Sprintf("tag %q has an empty value", name), nil)
	}
	return Pair{Name: name, Value: value}, nil
}

// sanitizeName keeps the vorbis field-name alphabet: printable ASCII
// 0x20 through 0x7D, excluding the separator itself.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7d || r == '=' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// sanitizeValue NFC-normalizes the value and strips control characters,
// including the newlines that would break the tool's line-oriented
// comment format.
func sanitizeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range norm.NFC.String(value) {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
