package record

import (
	"strconv"
	"strings"
)

// UnknownVersion is the placeholder several upstream suites use for "no
// version detected".
const UnknownVersion = "0.0.0"

// String returns nil for an empty string and a pointer to s otherwise.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Known is like String but also maps the given placeholder spellings
// (compared without case) to nil.
func Known(s string, placeholders ...string) *string {
	s = strings.TrimSpace(s)
	for _, p := range placeholders {
		if strings.EqualFold(s, p) {
			return nil
		}
	}
	return String(s)
}

// Version normalizes a version string: empty and UnknownVersion become nil.
func Version(s string) *string {
	s = strings.TrimSpace(s)
	if s == UnknownVersion {
		return nil
	}
	return String(s)
}

func Bool(b bool) *bool {
	return &b
}

func Int(i int) *int {
	return &i
}

// Bits parses a bitness value such as "64". Zero and garbage become nil.
func Bits(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// Deref returns the pointed to value or the zero value.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
