package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// annotation is the inert node backing the annotation keywords and any
// keyword this dialect does not recognise. Known annotations still
// type-check their argument.
type annotation struct {
	base
}

func newAnnotation(name string) *annotation {
	return &annotation{base{name: name, allowed: true}}
}

func (a *annotation) Ingest(_ *compiler, r *jsonstream.Reader) error {
	switch a.name {
	case "title", "description", "$comment", "$schema":
		if r.Kind() != jsonstream.String {
			return jserrors.NewInvalidArgument(a.name)
		}
		return nil
	case "deprecated", "readOnly", "writeOnly":
		if r.Kind() != jsonstream.True && r.Kind() != jsonstream.False {
			return jserrors.NewInvalidArgument(a.name)
		}
		return nil
	case "example":
		if r.Kind() != jsonstream.Array {
			return jserrors.NewInvalidArgument(a.name)
		}
		return r.SkipValue()
	default:
		// default, and unrecognised keywords: any value
		return r.SkipValue()
	}
}

func (a *annotation) Validate(_ *jsonstream.Reader) error {
	return nil
}

// format type-checks its argument and is otherwise inert: format assertions
// are not part of validation in this dialect.
type format struct {
	base
}

func newFormat() *format {
	return &format{base{name: "format", allowed: true}}
}

func (f *format) Ingest(_ *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.String {
		return jserrors.NewInvalidArgument(f.name)
	}
	return nil
}

func (f *format) Validate(_ *jsonstream.Reader) error {
	return nil
}

// falseSchema is the compiled form of the boolean schema false: it rejects
// every instance.
type falseSchema struct {
	base
}

func newFalseSchema() *falseSchema {
	return &falseSchema{base{name: "false"}}
}

func (f *falseSchema) Ingest(_ *compiler, _ *jsonstream.Reader) error {
	return nil
}

func (f *falseSchema) Validate(_ *jsonstream.Reader) error {
	return fail(f.name)
}

func (f *falseSchema) ValidateAsAlternate(_ *jsonstream.Reader, _ []byte, _ int) error {
	return fail(f.name)
}
