package errors

import (
	"strconv"
	"strings"
)

// maxHeight bounds a scroll height; anything larger is almost certainly a typo.
const maxHeight = 1 << 20

// ParseHeight parses a scroll height as written in a data-scroll attribute or
// a --height flag. It returns (0, false, nil) for the literal "false", which
// disables scrolling.
//
// Accepted forms:
//   - "false" (case-insensitive)
//   - a non-negative integer, optionally suffixed with "px"
func ParseHeight(s string) (height int, enabled bool, err error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false, New(ErrCodeInvalidHeight, "height cannot be empty")
	}
	if strings.EqualFold(v, "false") {
		return 0, false, nil
	}
	v = strings.TrimSuffix(v, "px")
	n, perr := strconv.Atoi(v)
	if perr != nil {
		return 0, false, Wrap(ErrCodeInvalidHeight, perr, "height must be an integer or false: %q", s)
	}
	if n < 0 {
		return 0, false, New(ErrCodeInvalidHeight, "height cannot be negative: %d", n)
	}
	if n > maxHeight {
		return 0, false, New(ErrCodeInvalidHeight, "height too large (max %d)", maxHeight)
	}
	return n, true, nil
}

// ValidateSpace validates the extra per-column spacing.
func ValidateSpace(space int) error {
	if space < 0 {
		return New(ErrCodeInvalidSpace, "space cannot be negative: %d", space)
	}
	return nil
}
