// Package pattern compiles delimited version patterns such as /v\d+\.\d+\.\d+/
// into matchers used to spot release marker commits.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
)

const (
	// Default matches a commit whose whole message is MAJOR.MINOR.PATCH,
	// which is what `npm version` produces.
	Default = `/^\d+\.\d+\.\d+$/`

	// Braced matches v-prefixed tags anywhere in the message, e.g. "Release (v1.2.3)".
	Braced = `/v\d+\.\d+\.\d+/`
)

// Pattern is a compiled version pattern
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Match is the leftmost version token found in a message
type Match struct {
	Text   string
	Offset int
}

// Compile strips the outer delimiters of raw and compiles the body.
// The first character is the delimiter and its last occurrence closes the
// pattern. Trailing i, m and s flags map onto Go inline flags; g and u are
// accepted and ignored.
func Compile(raw string) (*Pattern, error) {
	body, flags, err := split(raw)
	if err != nil {
		return nil, errors.InvalidPattern(raw, err)
	}

	re, err := regexp.Compile(flags + body)
	if err != nil {
		return nil, errors.InvalidPattern(raw, err)
	}

	return &Pattern{raw: raw, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for presets.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Preset resolves a preset name to its raw pattern
func Preset(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "default", "plain", "1.2.3":
		return Default, true
	case "braced", "v", "(v1.2.3)":
		return Braced, true
	}
	return "", false
}

// Match returns the leftmost match in message. Empty matches are ignored so a
// release label is never the empty string.
func (p *Pattern) Match(message string) (Match, bool) {
	loc := p.re.FindStringIndex(message)
	if loc == nil || loc[0] == loc[1] {
		return Match{}, false
	}
	return Match{Text: message[loc[0]:loc[1]], Offset: loc[0]}, true
}

// String returns the pattern as the user wrote it, delimiters included
func (p *Pattern) String() string {
	return p.raw
}

// Expr returns the compiled expression without delimiters
func (p *Pattern) Expr() string {
	return p.re.String()
}

func split(raw string) (body string, flags string, err error) {
	if len(raw) < 2 {
		return "", "", fmt.Errorf("pattern must be wrapped in delimiters")
	}

	delim := rune(raw[0])
	if delim > unicode.MaxASCII || delim == '\\' || unicode.IsLetter(delim) || unicode.IsDigit(delim) || unicode.IsSpace(delim) {
		return "", "", fmt.Errorf("invalid delimiter %q", delim)
	}

	end := strings.LastIndexByte(raw, raw[0])
	if end == 0 {
		return "", "", fmt.Errorf("missing closing delimiter %q", delim)
	}

	var inline strings.Builder
	for _, flag := range raw[end+1:] {
		switch flag {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), flag) {
				inline.WriteRune(flag)
			}
		case 'g', 'u':
		default:
			return "", "", fmt.Errorf("unsupported flag %q", flag)
		}
	}

	if inline.Len() > 0 {
		flags = "(?" + inline.String() + ")"
	}

	return raw[1:end], flags, nil
}
