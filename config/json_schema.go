package config

import (
	"errors"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

var (
	ErrGeneratedSchemaIsNil = errors.New("generated JSON Schema is nil")
)

func JSONSchema() ([]byte, error) {
	schema := jsonschema.Reflect(&Config{})

	if schema == nil {
		return nil, ErrGeneratedSchemaIsNil
	}

	return schema.MarshalJSON()
}

// DumpYAML renders the effective configuration. Secrets are never included.
func DumpYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
