package utils

import (
	"strings"
	"unicode/utf8"
)

// EqualFold performs case-insensitive rune equality check
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}

	// ASCII first
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}

	return strings.EqualFold(string(a), string(b))
}

// HasPrefixIgnoreCase reports whether s starts with prefix, ignoring case.
// It walks both strings rune by rune without allocating lowered copies.
func HasPrefixIgnoreCase(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if !EqualFold(sr, pr) {
			return false
		}
		prefix, s = prefix[pn:], s[sn:]
	}
	return true
}
