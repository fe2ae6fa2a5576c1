package config

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestJSONSchema(t *testing.T) {
	schemaJSON, err := JSONSchema()

	assert.NoError(t, err)
	assert.NotNil(t, schemaJSON)
	unmarshalledSchema := &jsonschema.Schema{}
	err = unmarshalledSchema.UnmarshalJSON(schemaJSON)
	assert.NoError(t, err)
}

func TestDumpYAMLOmitsSecrets(t *testing.T) {
	cfg := &Config{
		Inference: InferenceConfig{Model: "dslim/bert-base-NER", APIKey: "hf_secret"},
		Auth:      AuthConfig{Secret: "jwt-secret", Required: true},
	}

	out, err := DumpYAML(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "hf_secret")
	assert.NotContains(t, string(out), "jwt-secret")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "inference")
}
