// Package sentiment defines the review sentiment labels and their training codes.
package sentiment

import (
	"errors"
	"fmt"
	"strings"
)

// Label is a sentiment category.
type Label string

const (
	// Positive is a favourable review.
	Positive Label = "positive"
	// Neutral is neither favourable nor unfavourable.
	Neutral Label = "neutral"
	// Negative is an unfavourable review.
	Negative Label = "negative"
	// Unknown is returned when a classifier emits a code outside the label set.
	// It is never a valid training target.
	Unknown Label = "unknown"
)

// Training codes for the three categories.
const (
	CodeNegative = -1
	CodeNeutral  = 0
	CodePositive = 1
)

// ErrUnknownCategory signals a category outside positive/neutral/negative.
var ErrUnknownCategory = errors.New("unknown sentiment category")

// Labels returns the three trainable labels ordered by code.
func Labels() []Label {
	return []Label{Negative, Neutral, Positive}
}

// Codes returns the three training codes in ascending order.
func Codes() []int {
	return []int{CodeNegative, CodeNeutral, CodePositive}
}

// ParseLabel maps a category string to a Label.
// Surrounding whitespace and case are ignored; anything else is an error.
func ParseLabel(s string) (Label, error) {
	switch Label(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive, nil
	case Neutral:
		return Neutral, nil
	case Negative:
		return Negative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// FromCode maps a classifier output code to a Label. Unmapped codes yield Unknown.
func FromCode(code int) Label {
	switch code {
	case CodePositive:
		return Positive
	case CodeNeutral:
		return Neutral
	case CodeNegative:
		return Negative
	default:
		return Unknown
	}
}

// Code returns the training code of l. ok is false for Unknown and invalid labels.
func (l Label) Code() (code int, ok bool) {
	switch l {
	case Positive:
		return CodePositive, true
	case Neutral:
		return CodeNeutral, true
	case Negative:
		return CodeNegative, true
	default:
		return 0, false
	}
}

// Valid reports whether l is one of the three trainable labels.
func (l Label) Valid() bool {
	_, ok := l.Code()
	return ok
}

func (l Label) String() string { return string(l) }
