package text

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownMode is returned by ParseCaseMode for ids outside the fixed set.
	ErrUnknownMode = errors.New("unknown case mode")
	// ErrUnknownUnit is returned by ParseUnit.
	ErrUnknownUnit = errors.New("unknown trim unit")
	// ErrUnknownSide is returned by ParseSide.
	ErrUnknownSide = errors.New("unknown trim side")
)

// SplitLines splits s on "\n" and "\r\n". A bare "\r" is not a line break.
// The result always has at least one element.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
