package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/tileforge/levels"
)

// FieldKind selects the characters a text field accepts.
type FieldKind int

const (
	FreeText FieldKind = iota
	Digits
	Decimal
)

func (k FieldKind) allows(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case k == Decimal:
		return r == '.'
	case k == FreeText:
		return (r >= 'a' && r <= 'z') || r == ' ' || r == '-' || r == '_'
	}
	return false
}

// fieldPadding is the horizontal room kept free inside a field.
const fieldPadding = 10

// TextField is the editable value behind an input box. It holds no
// rendering state; Width is the pixel width the text must fit in.
type TextField struct {
	Kind    FieldKind
	Width   float64
	Text    string
	Focused bool
}

// Type applies one frame of keyboard input. Characters outside the allow
// list are ignored; backspace removes the last character. Afterwards the
// newest characters are dropped until the text fits.
func (f *TextField) Type(chars []rune, backspace bool, measure func(string) float64) {
	if !f.Focused {
		return
	}
	var b strings.Builder
	b.WriteString(f.Text)
	for _, r := range chars {
		if f.Kind.allows(r) {
			b.WriteRune(r)
		}
	}
	text := []rune(b.String())
	if backspace && len(text) > 0 {
		text = text[:len(text)-1]
	}
	if measure != nil {
		for len(text) > 0 && measure(string(text))+fieldPadding > f.Width {
			text = text[:len(text)-1]
		}
	}
	f.Text = string(text)
}

// Int parses the field as a base-10 integer.
func (f *TextField) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(f.Text))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number: %w", f.Text, levels.ErrInvalidInput)
	}
	return v, nil
}

// Float parses the field as a finite decimal number.
func (f *TextField) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number: %w", f.Text, levels.ErrInvalidInput)
	}
	return v, nil
}
