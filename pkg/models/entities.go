package models

// EntitySpan is a contiguous run of characters in the normalized text
// classified as a named entity. Start and End are half-open character
// (code point) offsets.
type EntitySpan struct {
	Group string  `json:"group"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Adjacent reports whether next starts exactly where s ends.
func (s EntitySpan) Adjacent(next EntitySpan) bool {
	return s.End == next.Start
}

// Prediction is one aggregated record returned by the inference engine in the
// Hugging Face token-classification format.
type Prediction struct {
	EntityGroup string  `json:"entity_group" validate:"required"`
	Word        string  `json:"word"`
	Start       int     `json:"start" validate:"gte=0"`
	End         int     `json:"end" validate:"gtfield=Start"`
	Score       float64 `json:"score" validate:"gte=0,lte=1"`
}

// Span converts the engine record into the span carried through the pipeline.
func (p Prediction) Span() EntitySpan {
	return EntitySpan{
		Group: p.EntityGroup,
		Text:  p.Word,
		Score: p.Score,
		Start: p.Start,
		End:   p.End,
	}
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

// GroupSummary holds the merged entities of a single group.
type GroupSummary struct {
	Group    string       `json:"group"`
	Label    string       `json:"label"`
	Count    int          `json:"count"`
	Entities []EntitySpan `json:"entities"`
}

type EntitySummary struct {
	Total  int            `json:"total"`
	Groups []GroupSummary `json:"groups"`
}
