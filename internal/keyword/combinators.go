package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// combinatorNode backs allOf, anyOf and oneOf: a list of compiled
// sub-schemas and a count predicate over how many passed. The enclosing
// object's unevaluated applicators, remembered during the interdependence
// pass, can rescue a failing sub-schema by accepting the whole value.
type combinatorNode struct {
	base
	lists []List
	check func(count, total int) bool
}

func newCombinator(name string, check func(count, total int) bool) *combinatorNode {
	return &combinatorNode{base: base{name: name, allowed: true}, check: check}
}

func (c *combinatorNode) Ingest(cc *compiler, r *jsonstream.Reader) error {
	lists, err := schemaListArgument(cc, r, c.name)
	if err != nil {
		return err
	}
	c.lists = lists
	return nil
}

func (c *combinatorNode) Validate(r *jsonstream.Reader) error {
	alt := c.unevaluatedFor(r.Kind())
	count := 0
	for _, list := range c.lists {
		passed, err := runSubSchema(list, r, alt)
		if err != nil {
			return err
		}
		if passed {
			count++
		}
	}
	if !c.check(count, len(c.lists)) {
		return fail(c.name)
	}
	return nil
}

func (c *combinatorNode) unevaluatedFor(k jsonstream.Kind) Node {
	switch k {
	case jsonstream.Array:
		return c.unevalItems
	case jsonstream.Object:
		return c.unevalProps
	default:
		return nil
	}
}

// notNode owns a single sub-schema that must fail.
type notNode struct {
	base
	schema List
}

func newNot() *notNode {
	return &notNode{base: base{name: "not", allowed: true}}
}

func (n *notNode) Ingest(c *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.Object, jsonstream.True, jsonstream.False:
		schema, err := c.compileSchema(r)
		if err != nil {
			return err
		}
		n.schema = schema
		return nil
	default:
		return jserrors.NewInvalidArgument(n.name)
	}
}

func (n *notNode) Validate(r *jsonstream.Reader) error {
	var alt Node
	switch r.Kind() {
	case jsonstream.Array:
		alt = n.unevalItems
	case jsonstream.Object:
		alt = n.unevalProps
	}
	passed, err := runSubSchema(n.schema, r, alt)
	if err != nil {
		return err
	}
	if passed {
		return fail(n.name)
	}
	return nil
}

// runSubSchema evaluates one sub-schema conjunction against the value at r.
// A failing sub-schema still counts as validated when the enclosing
// object's unevaluated applicator accepts the whole value.
func runSubSchema(list List, r *jsonstream.Reader, alt Node) (bool, error) {
	for _, n := range list {
		err := n.Validate(r.Fork())
		if err == nil {
			continue
		}
		if !jserrors.IsMismatch(err) {
			return false, err
		}
		if alt != nil && alt.Allowed() {
			aerr := alt.ValidateAsAlternate(r.Fork(), nil, -1)
			if aerr == nil {
				return true, nil
			}
			if !jserrors.IsMismatch(aerr) {
				return false, aerr
			}
		}
		return false, nil
	}
	return true, nil
}

// schemaListArgument compiles an array-of-schemas keyword argument.
func schemaListArgument(c *compiler, r *jsonstream.Reader, name string) ([]List, error) {
	if r.Kind() != jsonstream.Array {
		return nil, jserrors.NewInvalidArgument(name)
	}
	var lists []List
	for {
		ev, err := r.Next()
		if err != nil {
			return nil, err
		}
		if ev == jsonstream.EventLevelEnd {
			return lists, nil
		}
		if ev != jsonstream.EventValue {
			return nil, jserrors.NewInvalidArgument(name)
		}
		if err := r.ReadValue(); err != nil {
			return nil, err
		}
		list, err := c.compileSchema(r)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
}
