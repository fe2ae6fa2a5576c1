package ner

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nerlens/nerlens/internal"
	"github.com/nerlens/nerlens/pkg/models"
)

var log = internal.GetLogger()

var tracer = otel.Tracer("github.com/nerlens/nerlens/pkg/ner")

// Pipeline runs normalization, inference and span merging for one text at a
// time. It holds no per-request state and is safe for concurrent use as long
// as its recognizer is.
type Pipeline struct {
	recognizer    models.EntityRecognizer
	maxTextLength int
}

type Option func(*Pipeline)

// WithMaxTextLength rejects normalized texts longer than n characters.
// Zero disables the check.
func WithMaxTextLength(n int) Option {
	return func(p *Pipeline) {
		p.maxTextLength = n
	}
}

func NewPipeline(recognizer models.EntityRecognizer, opts ...Option) *Pipeline {
	p := &Pipeline{recognizer: recognizer}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze returns the merged entity spans found in rawText. Offsets refer to
// the normalized form of rawText.
//
// Errors are either a *models.ValidationError for unusable input or a
// *models.InferenceError for anything that fails after validation, including
// panics raised by the recognizer.
func (p *Pipeline) Analyze(ctx context.Context, rawText string) (spans []models.EntitySpan, err error) {
	if rawText == "" {
		return nil, models.NewValidationError(models.ErrNoTextProvided)
	}

	ctx, span := tracer.Start(ctx, "ner.Analyze")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	defer func() {
		if r := recover(); r != nil {
			spans = nil
			err = models.NewInferenceError(fmt.Errorf("%v", r))
		}
	}()

	text := Normalize(rawText)
	length := utf8.RuneCountInString(text)
	span.SetAttributes(attribute.Int("ner.text_length", length))

	if p.maxTextLength > 0 && length > p.maxTextLength {
		return nil, models.NewValidationError(
			"Text exceeds maximum length of %d characters", p.maxTextLength,
		)
	}
	if text == "" {
		// whitespace only
		return []models.EntitySpan{}, nil
	}

	raw, err := p.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, models.NewInferenceError(err)
	}

	spans = MergeAdjacent(raw)
	span.SetAttributes(
		attribute.Int("ner.raw_entities", len(raw)),
		attribute.Int("ner.entities", len(spans)),
	)
	log.Debugf("ner: %d raw spans merged into %d entities", len(raw), len(spans))

	return spans, nil
}
