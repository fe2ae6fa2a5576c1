package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerlens/nerlens/config"
	"github.com/nerlens/nerlens/pkg/models"
	"github.com/nerlens/nerlens/pkg/server/handlertools"
)

type stubRecognizer struct {
	spans []models.EntitySpan
	err   error
}

func (s stubRecognizer) Recognize(context.Context, string) ([]models.EntitySpan, error) {
	return s.spans, s.err
}

func TestReadInput(t *testing.T) {
	text, err := readInput(strings.NewReader("ignored"), []string{"Barack", "Obama"})
	require.NoError(t, err)
	assert.Equal(t, "Barack Obama", text)

	text, err = readInput(strings.NewReader("from stdin\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", text)
}

func TestRunAnalyze(t *testing.T) {
	appState := &models.AppState{
		Config: &config.Config{},
		Recognizer: stubRecognizer{spans: []models.EntitySpan{
			{Group: "PER", Text: "Jean", Start: 0, End: 4, Score: 0.9},
			{Group: "PER", Text: "Paul", Start: 4, End: 8, Score: 0.8},
		}},
	}

	var out bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), appState, "JeanPaul", &out))

	var spans []models.EntitySpan
	require.NoError(t, json.Unmarshal(out.Bytes(), &spans))
	require.Len(t, spans, 1)
	assert.Equal(t, "Jean Paul", spans[0].Text)
	assert.InDelta(t, 0.85, spans[0].Score, 1e-9)
}

func TestRunAnalyzeErrors(t *testing.T) {
	appState := &models.AppState{
		Config:     &config.Config{},
		Recognizer: stubRecognizer{err: errors.New("engine offline")},
	}

	var out bytes.Buffer
	err := runAnalyze(context.Background(), appState, "", &out)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.JSONEq(t, `{"error": "No text provided"}`, out.String())

	out.Reset()
	err = runAnalyze(context.Background(), appState, "Paris", &out)
	assert.ErrorIs(t, err, models.ErrInference)

	var resp handlertools.ErrorResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
	assert.Equal(t, "engine offline", resp.Details)
}
