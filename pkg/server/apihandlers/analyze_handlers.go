package apihandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nerlens/nerlens/internal"
	"github.com/nerlens/nerlens/pkg/models"
	"github.com/nerlens/nerlens/pkg/ner"
	"github.com/nerlens/nerlens/pkg/server/handlertools"
)

var log = internal.GetLogger()

// AnalyzeHandler extracts named entities from the posted text.
//
// The text is normalized, sent to the inference engine, and adjacent spans of
// the same group are merged before the entities are returned. Offsets refer to
// the normalized text.
//
//	@Summary		Extracts named entities from text
//	@Tags			ner
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.AnalyzeRequest	true	"Text to analyze"
//	@Success		200		{array}		models.EntitySpan
//	@Failure		400		{object}	APIError	"No text provided"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/analyze [post]
func AnalyzeHandler(pipeline *ner.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spans, ok := analyze(w, r, pipeline)
		if !ok {
			return
		}

		if err := handlertools.EncodeJSON(w, spans); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// AnalyzeSummaryHandler extracts named entities and groups them by entity group.
//
//	@Summary		Extracts named entities grouped by type
//	@Tags			ner
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.AnalyzeRequest	true	"Text to analyze"
//	@Success		200		{object}	models.EntitySummary
//	@Failure		400		{object}	APIError	"No text provided"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/analyze/summary [post]
func AnalyzeSummaryHandler(pipeline *ner.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spans, ok := analyze(w, r, pipeline)
		if !ok {
			return
		}

		if err := handlertools.EncodeJSON(w, ner.Summarize(spans)); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// analyze decodes the request and runs the pipeline. It renders the error
// response itself and reports false on failure.
func analyze(w http.ResponseWriter, r *http.Request, pipeline *ner.Pipeline) ([]models.EntitySpan, bool) {
	var req models.AnalyzeRequest
	if err := handlertools.DecodeJSON(r, &req); err != nil {
		handlertools.RenderError(w, err, http.StatusBadRequest)
		return nil, false
	}

	log.Debugf("AnalyzeHandler - RequestID %s - %d bytes", middleware.GetReqID(r.Context()), len(req.Text))

	spans, err := pipeline.Analyze(r.Context(), req.Text)
	if err != nil {
		handlertools.RenderError(w, err, http.StatusInternalServerError)
		return nil, false
	}
	return spans, true
}
