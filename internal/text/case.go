package text

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CaseMode selects one of the fixed casing transformations.
type CaseMode string

const (
	CaseSentence    CaseMode = "sentence"
	CaseLower       CaseMode = "lower"
	CaseUpper       CaseMode = "upper"
	CaseCapitalized CaseMode = "capitalized"
	CaseTitle       CaseMode = "title"
	CaseToggle      CaseMode = "toggle"
	CaseAlternating CaseMode = "alternating"
	CaseInverse     CaseMode = "inverse"
)

// ModeInfo describes a case mode for menus and listings.
type ModeInfo struct {
	Mode  CaseMode `json:"id"`
	Label string   `json:"label"`
	Icon  string   `json:"icon"`
}

var caseModes = []ModeInfo{
	{Mode: CaseSentence, Label: "Sentence case", Icon: "Aa"},
	{Mode: CaseLower, Label: "lower case", Icon: "aa"},
	{Mode: CaseUpper, Label: "UPPER CASE", Icon: "AA"},
	{Mode: CaseCapitalized, Label: "Capitalized Case", Icon: "Aa"},
	{Mode: CaseTitle, Label: "Title Case", Icon: "Tt"},
	{Mode: CaseToggle, Label: "tOGGLE cASE", Icon: "aA"},
	{Mode: CaseAlternating, Label: "aLtErNaTiNg", Icon: "aA"},
	{Mode: CaseInverse, Label: "InVeRsE", Icon: "⇅"},
}

// CaseModes returns every case mode in menu order.
func CaseModes() []ModeInfo {
	return append([]ModeInfo(nil), caseModes...)
}

// ParseCaseMode resolves a case-insensitive mode id.
func ParseCaseMode(raw string) (CaseMode, error) {
	mode := CaseMode(strings.ToLower(strings.TrimSpace(raw)))
	for _, m := range caseModes {
		if m.Mode == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w %q (want sentence|lower|upper|capitalized|title|toggle|alternating|inverse)", ErrUnknownMode, raw)
}

// Label returns the human-readable name of the mode, or the raw id when unknown.
func (m CaseMode) Label() string {
	for _, info := range caseModes {
		if info.Mode == m {
			return info.Label
		}
	}
	return string(m)
}

// titleStopWords stay lower-case in title case unless they open the text.
var titleStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "but": {}, "or": {}, "for": {}, "nor": {},
	"on": {}, "at": {}, "to": {}, "by": {}, "of": {}, "in": {}, "is": {},
}

// ApplyCase converts text according to mode. Unknown modes return text unchanged.
func ApplyCase(text string, mode CaseMode) string {
	if text == "" {
		return ""
	}

	switch mode {
	case CaseSentence:
		return sentenceCase(text)
	case CaseLower:
		return strings.ToLower(text)
	case CaseUpper:
		return strings.ToUpper(text)
	case CaseCapitalized:
		return capitalizedCase(text)
	case CaseTitle:
		return titleCase(text)
	case CaseToggle:
		return strings.Map(toggleRune, text)
	case CaseAlternating:
		return alternate(text, false)
	case CaseInverse:
		return alternate(text, true)
	default:
		return text
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// sentenceCase upper-cases the first word character of the text and the first
// word character after each terminator. Only whitespace may sit in between.
func sentenceCase(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	capNext := true
	for _, r := range lowered {
		if capNext {
			switch {
			case unicode.IsSpace(r):
			case isWordRune(r):
				r = unicode.ToUpper(r)
				capNext = false
			case !isTerminator(r):
				capNext = false
			}
		}
		if isTerminator(r) {
			capNext = true
		}
		b.WriteRune(r)
	}

	return b.String()
}

// capitalizedCase upper-cases the first letter or digit of every
// whitespace-delimited word.
func capitalizedCase(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	inWord := false
	capitalized := false
	for _, r := range lowered {
		if unicode.IsSpace(r) {
			inWord = false
			b.WriteRune(r)
			continue
		}
		if !inWord {
			inWord = true
			capitalized = false
		}
		if !capitalized && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			r = unicode.ToUpper(r)
			capitalized = true
		}
		b.WriteRune(r)
	}

	return b.String()
}

// titleCase splits on single spaces, so runs of spaces produce empty words
// and newlines stay inside their word.
func titleCase(text string) string {
	words := strings.Split(strings.ToLower(text), " ")
	for i, w := range words {
		if i > 0 {
			if _, stop := titleStopWords[w]; stop {
				continue
			}
		}
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func toggleRune(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}

// alternate cases letters by their position among letters only.
// The first letter is lower-case unless invert is set.
func alternate(text string, invert bool) string {
	var b strings.Builder
	b.Grow(len(text))

	n := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		even := n%2 == 0
		if even != invert {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToUpper(r)
		}
		n++
		b.WriteRune(r)
	}

	return b.String()
}
