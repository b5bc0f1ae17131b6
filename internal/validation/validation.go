// Package validation checks user input before it reaches the sheet store.
// The store itself accepts any field values; these rules belong to the
// command line surface.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/probsheet/types"
)

var (
	// ErrInvalidURL is returned for links that are not absolute http(s) URLs
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidText is returned for input that is not valid UTF-8
	ErrInvalidText = errors.New("text is not valid UTF-8")
)

var titleCaser = cases.Title(language.English)

// Title trims s and rejects it when nothing is left. kind names the node in
// the error ("topic", "section", "problem").
func Title(kind, s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%s title: %w", kind, ErrInvalidText)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%s title cannot be empty", kind)
	}
	return trimmed, nil
}

// URL accepts absolute http(s) links with a host
func URL(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidURL
	}
	trimmed := strings.TrimSpace(s)
	u, err := url.Parse(trimmed)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	return trimmed, nil
}

// Notes accepts any valid UTF-8 text, including the empty string
func Notes(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("notes: %w", ErrInvalidText)
	}
	return s, nil
}

// Difficulty parses a label case-insensitively, so "easy" and "EASY" both
// map to types.Easy
func Difficulty(s string) (types.Difficulty, error) {
	d := types.Difficulty(titleCaser.String(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid difficulty %q (use one of %v)", s, types.Difficulties)
	}
	return d, nil
}

// Index checks a 0-based position against a collection of size n
func Index(i, n int) error {
	if n == 0 {
		return fmt.Errorf("position %d: collection is empty", i)
	}
	if i < 0 || i >= n {
		return fmt.Errorf("position %d out of range (0-%d)", i, n-1)
	}
	return nil
}
