package configmanager

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

// SchemaTitle is the title of the settings JSON schema.
const SchemaTitle = "sf Settings"

// Schema returns the JSON schema of the settings file, for editors validating sf.yaml.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		FieldNameTag:              "mapstructure",
		Mapper:                    durationMapper,
	}

	schema := reflector.Reflect(&Settings{})
	schema.ID = ""
	schema.Title = SchemaTitle
	schema.Description = "JSON schema for the sf command line settings (sf.yaml)"

	// Every setting has a default.
	walkSchema(schema, func(s *jsonschema.Schema) {
		s.Required = nil
	})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}

func walkSchema(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties == nil {
		return
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		walkSchema(pair.Value, fn)
	}
}

func durationMapper(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeFor[time.Duration]() {
		return nil
	}

	return &jsonschema.Schema{
		Type:    "string",
		Pattern: "^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$",
	}
}
