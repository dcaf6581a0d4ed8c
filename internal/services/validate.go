package services

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxIDRunes caps list, comment, device, and user identifiers.
const MaxIDRunes = 128

// cleanID trims id and enforces 1..MaxIDRunes runes.
func cleanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || utf8.RuneCountInString(id) > MaxIDRunes {
		return "", ErrInvalidID
	}
	return id, nil
}

// cleanOptionalID is cleanID that accepts blank input (returned as "").
func cleanOptionalID(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", nil
	}
	return cleanID(id)
}

// cleanContent trims and NFC-normalizes text, then enforces non-empty and
// at most maxRunes runes (maxRunes <= 0 disables the cap).
func cleanContent(s string, maxRunes int) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptyContent
	}
	if maxRunes > 0 && utf8.RuneCountInString(s) > maxRunes {
		return "", ErrTooLong
	}
	return s, nil
}
