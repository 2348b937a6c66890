package keyword

import (
	"fmt"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// compiler is the recursion context shared by every Ingest call while one
// schema document is being compiled.
type compiler struct {
	maxDepth int
}

// Compile compiles a schema document into its keyword list. The returned
// list is immutable and safe for concurrent validations.
func Compile(schema []byte, maxDepth int) (List, error) {
	if maxDepth <= 0 {
		maxDepth = jsonstream.DefaultMaxDepth
	}
	r := jsonstream.NewReader(schema, jsonstream.WithMaxDepth(maxDepth))
	if err := r.ReadValue(); err != nil {
		return nil, err
	}
	c := &compiler{maxDepth: maxDepth}
	return c.compileSchema(r)
}

// compileSchema compiles the value at the cursor as a schema: an object of
// keywords or a boolean schema. The value is consumed.
func (c *compiler) compileSchema(r *jsonstream.Reader) (List, error) {
	switch r.Kind() {
	case jsonstream.Object:
		return c.compileObject(r)
	case jsonstream.True:
		return nil, nil
	case jsonstream.False:
		return List{newFalseSchema()}, nil
	default:
		return nil, jserrors.NewInvalidArgument("schema")
	}
}

// compileObject builds one keyword list: a node per member, each ingesting
// its own argument, followed by the interdependence pass that wires the
// sibling cross-references.
func (c *compiler) compileObject(r *jsonstream.Reader) (List, error) {
	var pending List
	for {
		ev, err := r.Next()
		if err != nil {
			return nil, err
		}
		if ev == jsonstream.EventLevelEnd {
			break
		}
		if ev != jsonstream.EventKey {
			return nil, fmt.Errorf("keyword: malformed schema object")
		}
		name := string(r.Key())
		if err := r.ReadValue(); err != nil {
			return nil, err
		}
		n := build(name, r.Kind())
		if err := n.Ingest(c, r); err != nil {
			return nil, err
		}
		pending = append(pending, n)
	}
	return interdependence(pending)
}
