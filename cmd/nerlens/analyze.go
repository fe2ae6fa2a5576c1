package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nerlens/nerlens/pkg/models"
	"github.com/nerlens/nerlens/pkg/ner"
	"github.com/nerlens/nerlens/pkg/server/handlertools"
)

// readInput joins args with spaces, or reads all of stdin when there are none.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(b), nil
}

// runAnalyze runs the pipeline once and writes the entities, or the error
// body the HTTP API would return, to out as indented JSON.
func runAnalyze(ctx context.Context, appState *models.AppState, text string, out io.Writer) error {
	pipeline := ner.NewPipeline(
		appState.Recognizer,
		ner.WithMaxTextLength(appState.Config.NER.MaxTextLength),
	)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	spans, err := pipeline.Analyze(ctx, text)
	if err != nil {
		resp := handlertools.ErrorResponse{Error: err.Error()}
		var ie *models.InferenceError
		if errors.As(err, &ie) {
			resp = handlertools.ErrorResponse{Error: "Internal server error", Details: ie.Detail}
		}
		if encErr := enc.Encode(resp); encErr != nil {
			return encErr
		}
		return err
	}

	return enc.Encode(spans)
}
