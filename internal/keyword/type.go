package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// typeNode holds a bitset over the JSON value kinds. The names boolean and
// integer have no kind of their own: boolean sets both literal bits,
// integer is a number with an integral check.
type typeNode struct {
	base
	mask    uint16
	integer bool
}

func newType() *typeNode {
	return &typeNode{base: base{name: "type", allowed: true}}
}

func kindBit(k jsonstream.Kind) uint16 {
	return 1 << uint(k)
}

func (t *typeNode) addName(raw []byte) error {
	name, err := jsonstream.Unescape(raw)
	if err != nil {
		return err
	}
	switch string(name) {
	case "object":
		t.mask |= kindBit(jsonstream.Object)
	case "array":
		t.mask |= kindBit(jsonstream.Array)
	case "string":
		t.mask |= kindBit(jsonstream.String)
	case "number":
		t.mask |= kindBit(jsonstream.Number)
	case "integer":
		t.integer = true
	case "boolean":
		t.mask |= kindBit(jsonstream.True) | kindBit(jsonstream.False)
	case "null":
		t.mask |= kindBit(jsonstream.Null)
	default:
		return jserrors.NewInvalidArgument(t.name)
	}
	return nil
}

func (t *typeNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.String:
		return t.addName(r.Scalar())
	case jsonstream.Array:
		return eachElement(r, func(_ int, r *jsonstream.Reader) error {
			if r.Kind() != jsonstream.String {
				return jserrors.NewInvalidArgument(t.name)
			}
			return t.addName(r.Scalar())
		})
	default:
		return jserrors.NewInvalidArgument(t.name)
	}
}

func (t *typeNode) Validate(r *jsonstream.Reader) error {
	k := r.Kind()
	if t.mask&kindBit(k) != 0 {
		return nil
	}
	if t.integer && k == jsonstream.Number && jsonstream.IsIntegral(r.Scalar()) {
		return nil
	}
	return fail(t.name)
}
