// Package jsonschema compiles a JSON Schema document into an immutable
// validation program and applies it to instance documents. The dialect is
// the draft 2019-09/2020-12 keyword set without $ref resolution.
package jsonschema

import (
	"errors"
	"fmt"
	"os"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/keyword"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// Schema wraps a compiled schema document with convenience methods.
// A Schema is immutable and safe for concurrent use.
type Schema struct {
	list     keyword.List
	maxDepth int
}

// Compile compiles a schema document supplied as a JSON byte range.
func Compile(schema []byte, opts ...CompileOption) (*Schema, error) {
	cfg := applyCompileOptions(opts)
	list, err := keyword.Compile(schema, cfg.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{list: list, maxDepth: cfg.maxDepth}, nil
}

// MustCompile is like Compile but panics on error. Intended for schemas
// known at program start.
func MustCompile(schema []byte, opts ...CompileOption) *Schema {
	s, err := Compile(schema, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// CompileFile compiles a schema document from a file path.
func CompileFile(path string, opts ...CompileOption) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Compile(data, opts...)
}

// Validate validates an instance document against the schema. A nil return
// means the instance conforms; a non-conforming instance yields an
// errors.ValidationList naming the first failing keyword.
func (s *Schema) Validate(instance []byte) error {
	if s == nil {
		return schemaNotLoadedError()
	}
	return wrapVerdict(keyword.Validate(s.list, instance, s.maxDepth))
}

// ValidateFile validates a JSON file against the schema.
func (s *Schema) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read instance %s: %w", path, err)
	}
	return s.Validate(data)
}

func wrapVerdict(err error) error {
	if err == nil {
		return nil
	}
	var v *jserrors.Validation
	if errors.As(err, &v) && v != nil {
		return jserrors.ValidationList{*v}
	}
	if errors.Is(err, jsonstream.ErrDepth) {
		return jserrors.ValidationList{
			jserrors.NewValidation(jserrors.ErrValidateStackOverrun, "nesting depth exceeds guard", ""),
		}
	}
	return fmt.Errorf("validate instance: %w", err)
}

func schemaNotLoadedError() error {
	return jserrors.ValidationList{jserrors.NewValidation(jserrors.ErrSchemaNotLoaded, "schema not compiled", "")}
}

func nilReaderError() error {
	return jserrors.ValidationList{jserrors.NewValidation(jserrors.ErrParse, "nil reader", "")}
}
