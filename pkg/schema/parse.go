package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// worldSchemaJSON is the structural contract for raw WorldSchema documents.
// Semantic bounds (range ordering, kind-dependent requirements) are checked
// by Validate after decoding.
const worldSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["biome", "terrain_type", "scale_km", "grid_resolution", "noise", "vegetation", "seed"],
  "properties": {
    "biome": {"type": "string", "minLength": 1},
    "terrain_type": {"type": "string", "minLength": 1},
    "mood": {"type": "string"},
    "time_of_day": {"type": "string"},
    "scale_km": {"type": "number", "exclusiveMinimum": 0},
    "grid_resolution": {"type": "integer", "minimum": 2},
    "noise": {
      "type": "object",
      "required": ["octaves", "frequency", "lacunarity", "persistence", "amplitude_range"],
      "properties": {
        "octaves": {"type": "integer", "minimum": 1, "maximum": 12},
        "frequency": {"type": "number", "exclusiveMinimum": 0},
        "lacunarity": {"type": "number", "exclusiveMinimum": 1},
        "persistence": {"type": "number", "exclusiveMinimum": 0},
        "amplitude_range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2}
      }
    },
    "paths": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "waypoints", "width"],
        "properties": {
          "name": {"type": "string"},
          "kind": {"enum": ["road", "river"]},
          "waypoints": {
            "type": "array",
            "minItems": 2,
            "items": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3}
          },
          "width": {"type": "number", "exclusiveMinimum": 0},
          "depth": {"type": "number", "minimum": 0},
          "material": {"type": "string"}
        }
      }
    },
    "structures": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "count_range", "height_range", "scale_range"],
        "properties": {
          "kind": {"enum": ["tower", "spire", "dome", "bridge"]},
          "count_range": {"type": "array", "items": {"type": "integer", "minimum": 0}, "minItems": 2, "maxItems": 2},
          "height_range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
          "scale_range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
          "segments": {"type": "integer", "minimum": 0},
          "taper": {"type": "number"},
          "cut_ratio": {"type": "number"},
          "scatter_radius": {"type": "number", "minimum": 0}
        }
      }
    },
    "vegetation": {
      "type": "object",
      "required": ["density_per_km2"],
      "properties": {
        "density_per_km2": {"type": "number", "minimum": 0},
        "species": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "weight"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "weight": {"type": "number", "exclusiveMinimum": 0}
            }
          }
        },
        "height_range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2}
      }
    },
    "lighting": {"type": "object"},
    "sky": {"type": "object"},
    "seed": {"type": "integer"}
  }
}`

var compiledSchema = jsonschema.MustCompileString("worldschema.json", worldSchemaJSON)

// Parse decodes and validates a raw WorldSchema JSON document. The document
// is checked structurally against the embedded JSON Schema, then decoded and
// checked semantically via Validate.
func Parse(raw []byte) (*WorldSchema, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema document rejected: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var s WorldSchema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
