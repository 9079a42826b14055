package profile

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

const collectionsSchema = `{
  "type": "object",
  "properties": {
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "level": {"type": "string"},
          "years": {"type": "integer", "minimum": 0, "maximum": 80},
          "category": {"type": "string"}
        }
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "issuer": {"type": "string"},
          "acquired_date": {"type": "string"},
          "valid_until": {"type": "string"},
          "credential_id": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution"],
        "properties": {
          "institution": {"type": "string", "minLength": 1},
          "degree": {"type": "string"},
          "field": {"type": "string"},
          "graduation_year": {"type": "integer", "minimum": 1900, "maximum": 2200},
          "gpa": {"type": "number", "minimum": 0, "maximum": 5},
          "honors": {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(collectionsSchema)

func validateCollections(p Profile) error {
	doc := gojsonschema.NewGoLoader(map[string]any{
		"skills":         p.Skills,
		"certifications": p.Certifications,
		"education":      p.Education,
	})
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return apperrors.Validation("%s", strings.Join(msgs, "; "))
}
