package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Shape is a compiled JSON Schema describing what a stored value must look
// like before it is decoded.
type Shape struct {
	schema *gojsonschema.Schema
}

// NewShape compiles a JSON Schema document.
func NewShape(schemaJSON string) (*Shape, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile shape schema: %w", err)
	}
	return &Shape{schema: schema}, nil
}

// MustShape is like NewShape but panics on an invalid schema. Intended for
// package-level shape declarations.
func MustShape(schemaJSON string) *Shape {
	s, err := NewShape(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Check validates raw JSON against the shape. A nil shape accepts anything
// that parses.
func (s *Shape) Check(raw []byte) error {
	if s == nil {
		return nil
	}
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("shape mismatch: %s", strings.Join(msgs, "; "))
}
