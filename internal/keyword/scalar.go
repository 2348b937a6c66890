package keyword

import (
	"bytes"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// constNode stores the expected value as its kind plus canonical textual
// form. Unlike the facet keywords, const applies to every instance kind.
type constNode struct {
	base
	kind  jsonstream.Kind
	canon []byte
}

func newConst() *constNode {
	return &constNode{base: base{name: "const", allowed: true}}
}

func (c *constNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	c.kind = r.Kind()
	switch c.kind {
	case jsonstream.True, jsonstream.False, jsonstream.Null:
		return nil
	default:
		canon, err := r.Normalize(nil)
		if err != nil {
			return err
		}
		c.canon = canon
		return nil
	}
}

func (c *constNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != c.kind {
		return fail(c.name)
	}
	switch c.kind {
	case jsonstream.True, jsonstream.False, jsonstream.Null:
		return nil
	}
	got, err := r.Normalize(nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, c.canon) {
		return fail(c.name)
	}
	return nil
}

const (
	hasTrue uint8 = 1 << iota
	hasFalse
	hasNull
)

// enumNode keeps canonical forms in a set; the boolean and null members are
// tracked as scalar bits instead of set entries.
type enumNode struct {
	base
	values map[string]struct{}
	scalar uint8
}

func newEnum() *enumNode {
	return &enumNode{
		base:   base{name: "enum", allowed: true},
		values: make(map[string]struct{}),
	}
}

func (e *enumNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return jserrors.NewInvalidArgument(e.name)
	}
	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if ev == jsonstream.EventLevelEnd {
			return nil
		}
		if ev != jsonstream.EventValue {
			return jserrors.NewInvalidArgument(e.name)
		}
		if err := r.ReadValue(); err != nil {
			return err
		}
		switch r.Kind() {
		case jsonstream.True:
			e.scalar |= hasTrue
		case jsonstream.False:
			e.scalar |= hasFalse
		case jsonstream.Null:
			e.scalar |= hasNull
		default:
			canon, err := r.Normalize(nil)
			if err != nil {
				return err
			}
			e.values[string(canon)] = struct{}{}
		}
	}
}

func (e *enumNode) Validate(r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.True:
		if e.scalar&hasTrue == 0 {
			return fail(e.name)
		}
		return nil
	case jsonstream.False:
		if e.scalar&hasFalse == 0 {
			return fail(e.name)
		}
		return nil
	case jsonstream.Null:
		if e.scalar&hasNull == 0 {
			return fail(e.name)
		}
		return nil
	}
	got, err := r.Normalize(nil)
	if err != nil {
		return err
	}
	if _, ok := e.values[string(got)]; !ok {
		return fail(e.name)
	}
	return nil
}
