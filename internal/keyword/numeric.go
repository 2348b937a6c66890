package keyword

import (
	"fmt"
	"math"
	"strconv"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// numericBound backs minimum, maximum, exclusiveMinimum and
// exclusiveMaximum; the comparison is the only thing that differs.
type numericBound struct {
	base
	bound float64
	ok    func(v, bound float64) bool
}

func newNumericBound(name string, ok func(v, bound float64) bool) *numericBound {
	return &numericBound{base: base{name: name, allowed: true}, ok: ok}
}

func (n *numericBound) Ingest(_ *compiler, r *jsonstream.Reader) error {
	v, err := numberArgument(n.name, r)
	if err != nil {
		return err
	}
	n.bound = v
	return nil
}

func (n *numericBound) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Number {
		return nil
	}
	v, err := instanceNumber(r)
	if err != nil {
		return err
	}
	if !n.ok(v, n.bound) {
		return fail(n.name)
	}
	return nil
}

type multipleOf struct {
	base
	factor float64
}

func newMultipleOf() *multipleOf {
	return &multipleOf{base: base{name: "multipleOf", allowed: true}}
}

func (m *multipleOf) Ingest(_ *compiler, r *jsonstream.Reader) error {
	v, err := numberArgument(m.name, r)
	if err != nil {
		return err
	}
	if v <= 0 {
		return jserrors.NewInvalidArgument(m.name)
	}
	m.factor = v
	return nil
}

func (m *multipleOf) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Number {
		return nil
	}
	v, err := instanceNumber(r)
	if err != nil {
		return err
	}
	q := v / m.factor
	if q != math.Trunc(q) {
		return fail(m.name)
	}
	return nil
}

// numberArgument parses a keyword argument that must be a JSON number.
func numberArgument(name string, r *jsonstream.Reader) (float64, error) {
	if r.Kind() != jsonstream.Number {
		return 0, jserrors.NewInvalidArgument(name)
	}
	v, err := strconv.ParseFloat(string(r.Scalar()), 64)
	if err != nil {
		return 0, jserrors.NewInvalidArgument(name)
	}
	return v, nil
}

// countArgument parses a keyword argument that must be a non-negative count.
func countArgument(name string, r *jsonstream.Reader) (int, error) {
	v, err := numberArgument(name, r)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, jserrors.NewInvalidArgument(name)
	}
	return int(v), nil
}

func instanceNumber(r *jsonstream.Reader) (float64, error) {
	v, err := strconv.ParseFloat(string(r.Scalar()), 64)
	if err != nil {
		return 0, fmt.Errorf("keyword: invalid number in instance: %w", err)
	}
	return v, nil
}
