package text

import (
	"fmt"
	"strings"
	"unicode"
)

// Unit is the granularity removed by ApplyTrim.
type Unit string

const (
	UnitWord   Unit = "word"
	UnitLetter Unit = "letter"
)

// Side is the end of each line that ApplyTrim removes from.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// TrimSpec fully determines a word/letter removal.
type TrimSpec struct {
	Unit  Unit `json:"unit"`
	Count int  `json:"count"`
	Side  Side `json:"side"`
}

// DefaultTrimSpec removes one word from the left.
func DefaultTrimSpec() TrimSpec {
	return TrimSpec{Unit: UnitWord, Count: 1, Side: SideLeft}
}

// Normalized clamps negative counts to zero.
func (s TrimSpec) Normalized() TrimSpec {
	if s.Count < 0 {
		s.Count = 0
	}
	return s
}

func (s TrimSpec) String() string {
	return fmt.Sprintf("remove %d %s(s) from %s", s.Count, s.Unit, s.Side)
}

// ParseUnit resolves "word" or "letter" (plural and "char" forms accepted).
func ParseUnit(raw string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "word", "words":
		return UnitWord, nil
	case "letter", "letters", "char", "chars":
		return UnitLetter, nil
	default:
		return "", fmt.Errorf("%w %q (want word|letter)", ErrUnknownUnit, raw)
	}
}

// ParseSide resolves "left" or "right".
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "l":
		return SideLeft, nil
	case "right", "r":
		return SideRight, nil
	default:
		return "", fmt.Errorf("%w %q (want left|right)", ErrUnknownSide, raw)
	}
}

// ApplyTrim removes spec.Count words or letters from one side of every line.
// Blank lines are kept. A zero or negative count returns text unchanged,
// including its original line endings.
func ApplyTrim(text string, spec TrimSpec) string {
	spec = spec.Normalized()
	if spec.Count == 0 {
		return text
	}

	lines := SplitLines(text)
	for i, line := range lines {
		if line == "" {
			continue
		}
		if spec.Unit == UnitLetter {
			lines[i] = trimLetters(line, spec.Count, spec.Side)
		} else {
			lines[i] = trimWords(line, spec.Count, spec.Side)
		}
	}

	return strings.Join(lines, "\n")
}

func trimWords(line string, n int, side Side) string {
	words := splitWords(line)
	if n >= len(words) {
		return ""
	}
	if side == SideRight {
		return strings.Join(words[:len(words)-n], " ")
	}
	return strings.Join(words[n:], " ")
}

func trimLetters(line string, n int, side Side) string {
	runes := []rune(line)
	if n >= len(runes) {
		return ""
	}
	if side == SideRight {
		return string(runes[:len(runes)-n])
	}
	return string(runes[n:])
}

// splitWords splits text into non-empty word tokens on whitespace boundaries.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}
