// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"errors"
	"strings"
)

var errUnterminatedString = errors.New("unterminated string literal")

// pythonLiteralToJSON rewrites a Python list/dict literal into JSON.
// Single-quoted strings become double-quoted, and None/True/False become
// null/true/false. Numbers and structure pass through unchanged.
func pythonLiteralToJSON(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end, err := writeQuoted(&b, s, i)
			if err != nil {
				return "", err
			}
			i = end
		case strings.HasPrefix(s[i:], "None") && isBoundary(s, i+4):
			b.WriteString("null")
			i += 3
		case strings.HasPrefix(s[i:], "True") && isBoundary(s, i+4):
			b.WriteString("true")
			i += 3
		case strings.HasPrefix(s[i:], "False") && isBoundary(s, i+5):
			b.WriteString("false")
			i += 4
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// writeQuoted copies the string literal starting at s[start] as a JSON
// string and returns the index of its closing quote.
func writeQuoted(b *strings.Builder, s string, start int) (int, error) {
	quote := s[start]
	b.WriteByte('"')
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			switch next {
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i++
		case c == quote:
			b.WriteByte('"')
			return i, nil
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	return 0, errUnterminatedString
}

func isBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	c := s[i]
	return !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}
