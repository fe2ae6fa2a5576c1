package models

import "context"

// EntityRecognizer turns normalized text into token-level entity spans that
// are already aggregated at the word level, ordered by ascending Start and
// non-overlapping.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]EntitySpan, error)
}
