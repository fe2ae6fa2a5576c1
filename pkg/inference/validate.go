package inference

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/nerlens/nerlens/pkg/models"
)

var ErrMalformedOutput = errors.New("malformed model output")

var validate = validator.New()

// validatePredictions checks every record produced for text. Offsets are
// code point offsets, records must be ordered and must not overlap.
func validatePredictions(text string, predictions []models.Prediction) error {
	length := utf8.RuneCountInString(text)
	prevEnd := 0
	for i, p := range predictions {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: record %d: %s", ErrMalformedOutput, i, err)
		}
		if p.End > length {
			return fmt.Errorf(
				"%w: record %d ends at %d beyond text length %d",
				ErrMalformedOutput, i, p.End, length,
			)
		}
		if p.Start < prevEnd {
			return fmt.Errorf(
				"%w: record %d starts at %d before previous end %d",
				ErrMalformedOutput, i, p.Start, prevEnd,
			)
		}
		prevEnd = p.End
	}
	return nil
}
