package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// conditionalNode backs if, then and else. Each compiles its own
// sub-schema; the interdependence pass wires the branches onto the if node
// and only the if node reaches the final keyword list.
type conditionalNode struct {
	base
	schema List
	then   *conditionalNode
	els    *conditionalNode
}

func newConditional(name string) *conditionalNode {
	return &conditionalNode{base: base{name: name, allowed: true}}
}

func (c *conditionalNode) SetDependents(thenNode, elseNode Node) {
	if b, ok := thenNode.(*conditionalNode); ok {
		c.then = b
	}
	if b, ok := elseNode.(*conditionalNode); ok {
		c.els = b
	}
}

func (c *conditionalNode) Ingest(cc *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.Object, jsonstream.True, jsonstream.False:
		schema, err := cc.compileSchema(r)
		if err != nil {
			return err
		}
		c.schema = schema
		return nil
	default:
		return jserrors.NewInvalidArgument(c.name)
	}
}

func (c *conditionalNode) Validate(r *jsonstream.Reader) error {
	pass, err := listPasses(c.schema, r)
	if err != nil {
		return err
	}
	if pass {
		if c.then == nil {
			return nil
		}
		return validateList(c.then.schema, r)
	}
	if c.els == nil {
		return nil
	}
	return validateList(c.els.schema, r)
}
