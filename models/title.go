package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum length of a list or entry title, in characters.
const MaxTitleLength = 100

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title must be between 1 and 100 characters")
)

// NormalizeTitle trims surrounding whitespace and checks the length bounds.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return t, nil
}
