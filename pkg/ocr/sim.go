package ocr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SimNumberMaxLen is the number of characters kept from a SIM card reading.
const SimNumberMaxLen = 20

// ExtractSimNumber derives a SIM/ICCID-like string from the items of one
// image. Accumulation starts at the first item whose text begins with a digit;
// from there on every item whose whole text is letters and digits is appended.
// Scanning stops once SimNumberMaxLen characters are collected and the result
// is cut to that length. Lengths count runes.
func ExtractSimNumber(items []TextItem) string {
	var sb strings.Builder
	collected := 0
	started := false

	for _, item := range items {
		if !started && startsWithDigit(item.Text) {
			started = true
		}
		if !started {
			continue
		}

		if !isAlphanumeric(item.Text) {
			continue
		}

		sb.WriteString(item.Text)
		collected += utf8.RuneCountInString(item.Text)
		if collected >= SimNumberMaxLen {
			break
		}
	}

	return truncateRunes(sb.String(), SimNumberMaxLen)
}

func startsWithDigit(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return unicode.IsDigit(r)
}

// isAlphanumeric reports whether s is non-empty and made only of letters and
// digits. Letters outside ASCII count.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
