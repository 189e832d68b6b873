// Package numbase converts non-negative integers between decimal, binary,
// octal and hexadecimal notation.
package numbase

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrEmptyInput is returned by Convert for blank values.
	ErrEmptyInput = errors.New("number is empty")
	// ErrInvalidDigits is returned when a value contains digits outside its base.
	ErrInvalidDigits = errors.New("invalid digits")
	// ErrUnknownBase is returned by ParseBase.
	ErrUnknownBase = errors.New("unknown number base")
)

// Base is a supported number system.
type Base struct {
	ID    string
	Name  string
	Radix int
}

var (
	Decimal     = Base{ID: "decimal", Name: "Decimal", Radix: 10}
	Binary      = Base{ID: "binary", Name: "Binary", Radix: 2}
	Octal       = Base{ID: "octal", Name: "Octal", Radix: 8}
	Hexadecimal = Base{ID: "hexadecimal", Name: "Hexadecimal", Radix: 16}
)

var bases = []Base{Decimal, Binary, Octal, Hexadecimal}

// Bases returns the supported bases in display order.
func Bases() []Base {
	return append([]Base(nil), bases...)
}

// Label returns e.g. "Hexadecimal (Base 16)".
func (b Base) Label() string {
	return fmt.Sprintf("%s (Base %d)", b.Name, b.Radix)
}

func (b Base) String() string { return b.ID }

// ParseBase accepts ids ("hexadecimal"), short forms ("hex") and radixes ("16").
func ParseBase(raw string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "decimal", "dec", "d", "10":
		return Decimal, nil
	case "binary", "bin", "b", "2":
		return Binary, nil
	case "octal", "oct", "o", "8":
		return Octal, nil
	case "hexadecimal", "hex", "h", "x", "16":
		return Hexadecimal, nil
	default:
		return Base{}, fmt.Errorf("%w %q (want decimal|binary|octal|hexadecimal)", ErrUnknownBase, raw)
	}
}

func validDigit(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 10:
		return r >= '0' && r <= '9'
	case 16:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return false
	}
}

// Validate reports whether value is a well-formed number in base.
// Blank values are valid; surrounding whitespace is ignored.
func Validate(value string, base Base) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	for _, r := range v {
		if !validDigit(r, base.Radix) {
			return fmt.Errorf("%w: invalid %s number %q", ErrInvalidDigits, base.Name, v)
		}
	}
	return nil
}

// Conversion holds one value rendered in every supported base.
type Conversion struct {
	Decimal     string `json:"decimal"`
	Binary      string `json:"binary"`
	Octal       string `json:"octal"`
	Hexadecimal string `json:"hexadecimal"`
}

// Get returns the rendering for base.
func (c Conversion) Get(base Base) string {
	switch base.Radix {
	case 2:
		return c.Binary
	case 8:
		return c.Octal
	case 16:
		return c.Hexadecimal
	default:
		return c.Decimal
	}
}

// Result is a single rendering of a conversion.
type Result struct {
	Base  Base
	Value string
}

// Others returns the renderings in every base except from, in display order.
func (c Conversion) Others(from Base) []Result {
	out := make([]Result, 0, len(bases)-1)
	for _, b := range bases {
		if b.Radix == from.Radix {
			continue
		}
		out = append(out, Result{Base: b, Value: c.Get(b)})
	}
	return out
}

// Convert parses value in base from and renders it in all bases.
// Values of any length are converted exactly.
func Convert(value string, from Base) (Conversion, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Conversion{}, ErrEmptyInput
	}
	if err := Validate(v, from); err != nil {
		return Conversion{}, err
	}

	n, ok := new(big.Int).SetString(v, from.Radix)
	if !ok {
		return Conversion{}, fmt.Errorf("%w: invalid %s number %q", ErrInvalidDigits, from.Name, v)
	}
	return fromBig(n), nil
}

func fromBig(n *big.Int) Conversion {
	return Conversion{
		Decimal:     n.Text(10),
		Binary:      n.Text(2),
		Octal:       n.Text(8),
		Hexadecimal: strings.ToUpper(n.Text(16)),
	}
}

// ReferenceTable returns conversions for 0..n-1.
func ReferenceTable(n int) []Conversion {
	if n <= 0 {
		return nil
	}
	rows := make([]Conversion, n)
	for i := range rows {
		rows[i] = Conversion{
			Decimal:     strconv.Itoa(i),
			Binary:      strconv.FormatInt(int64(i), 2),
			Octal:       strconv.FormatInt(int64(i), 8),
			Hexadecimal: strings.ToUpper(strconv.FormatInt(int64(i), 16)),
		}
	}
	return rows
}
