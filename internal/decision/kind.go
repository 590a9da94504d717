// Package decision supplies every chance outcome the combat engine needs,
// either from a seeded generator or from answers typed in by an operator.
package decision

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the type of value a draw produces.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindReal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Request describes the value a debug source is waiting for.
// Low and High are unused for boolean requests.
type Request struct {
	Kind Kind
	Low  float64
	High float64
}

// Question renders the prompt shown to the operator for this request.
func (r Request) Question(label string) string {
	switch r.Kind {
	case KindBool:
		return fmt.Sprintf("Decide %s: yes or no? (y/n)", label)
	case KindInt:
		return fmt.Sprintf("Decide %s: an integer between %d and %d?", label, int(r.Low), int(r.High))
	default:
		return fmt.Sprintf("Decide %s: a number between %s and %s?", label, formatReal(r.Low), formatReal(r.High))
	}
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Answer is a value supplied by the operator.
type Answer struct {
	Kind Kind
	Bool bool
	Int  int
	Real float64
}

// BoolAnswer wraps a yes/no answer.
func BoolAnswer(v bool) Answer { return Answer{Kind: KindBool, Bool: v} }

// IntAnswer wraps an integer answer.
func IntAnswer(v int) Answer { return Answer{Kind: KindInt, Int: v} }

// RealAnswer wraps a real-number answer.
func RealAnswer(v float64) Answer { return Answer{Kind: KindReal, Real: v} }

// ParseAnswer reads operator text as a value of the given kind.
// Booleans accept y/n (and yes/no); numbers use Go's number syntax and
// must be finite.
func ParseAnswer(kind Kind, text string) (Answer, error) {
	switch kind {
	case KindBool:
		switch text {
		case "y", "yes":
			return BoolAnswer(true), nil
		case "n", "no":
			return BoolAnswer(false), nil
		}
	case KindInt:
		if v, err := strconv.Atoi(text); err == nil {
			return IntAnswer(v), nil
		}
	case KindReal:
		if v, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return RealAnswer(v), nil
		}
	}
	return Answer{}, fmt.Errorf("%w: %q is not a %s", ErrWrongKind, text, kind)
}
