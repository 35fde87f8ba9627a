// Package schemas validates JSON documents, chiefly model-generated coaching
// reports, against JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	rootschemas "github.com/jonathan/ats-ranker/schemas"
)

// ValidationError lists every place a document departs from its schema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one schema violation. Field is "(root)" for violations of
// the top-level object, such as a missing required property.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	msgs := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "document does not match schema: " + strings.Join(msgs, "; ")
}

// SchemaLoadError is returned when the schema cannot be compiled or the
// document is not JSON at all.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator checks documents against one compiled schema. It is safe for
// concurrent use.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schemaContent. name only labels errors.
func Compile(name, schemaContent string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

// Validate checks jsonContent and returns a *ValidationError listing every
// violation, or a *SchemaLoadError if it does not parse.
func (v *Validator) Validate(jsonContent string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: v.name, Message: "document is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// ValidateJSONString compiles schemaContent and validates jsonContent with it.
func ValidateJSONString(schemaContent, jsonContent string) error {
	v, err := Compile("(inline)", schemaContent)
	if err != nil {
		return err
	}
	return v.Validate(jsonContent)
}

var coachingReport = sync.OnceValues(func() (*Validator, error) {
	return Compile("coaching_report.schema.json", rootschemas.CoachingReport)
})

// ValidateCoachingReport checks a coaching report against the embedded
// schema, which is compiled on first use.
func ValidateCoachingReport(jsonContent string) error {
	v, err := coachingReport()
	if err != nil {
		return err
	}
	return v.Validate(jsonContent)
}
