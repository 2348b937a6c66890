// Package keyword implements the compiled form of a JSON Schema document:
// a directed graph of keyword nodes wired by a post-compilation
// interdependence pass, validated against a streaming token view of the
// instance.
package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// Applicator fall-back priorities. Within one schema object the applicators
// of a family form a chain in ascending order:
//
//	1 prefixItems  / properties
//	2 items        / patternProperties
//	3 additionalItems / additionalProperties
//	4 unevaluatedItems / unevaluatedProperties
const (
	prioPrimary     = 1
	prioSecondary   = 2
	prioAdditional  = 3
	prioUnevaluated = 4
)

// List is the compiled form of one schema object: an ordered conjunction of
// keyword nodes.
type List []Node

// Node is one compiled keyword. Validate receives a private cursor snapshot
// positioned at an already-read instance value; a node whose value kind
// does not match the instance kind passes without inspecting it.
// ValidateAsAlternate is invoked through the fall-back chain for a
// sub-value no earlier applicator claimed; key carries the member name for
// object applicators, index the element position for array applicators.
type Node interface {
	Name() string
	Priority() int
	Allowed() bool
	Ingest(c *compiler, r *jsonstream.Reader) error
	Validate(r *jsonstream.Reader) error
	ValidateAsAlternate(r *jsonstream.Reader, key []byte, index int) error
	SetAlternate(n Node)
	SetDependents(a, b Node)
	SetUnevaluated(items, properties Node)

	alternate() Node
}

// base carries the fields and default behaviour shared by every keyword.
type base struct {
	name        string
	priority    int
	allowed     bool
	alt         Node
	unevalItems Node
	unevalProps Node
}

func (b *base) Name() string        { return b.name }
func (b *base) Priority() int       { return b.priority }
func (b *base) Allowed() bool       { return b.allowed }
func (b *base) SetAlternate(n Node) { b.alt = n }
func (b *base) alternate() Node     { return b.alt }

func (b *base) SetDependents(_, _ Node) {}

func (b *base) SetUnevaluated(items, properties Node) {
	b.unevalItems = items
	b.unevalProps = properties
}

func (b *base) ValidateAsAlternate(_ *jsonstream.Reader, _ []byte, _ int) error {
	return nil
}

// fallBack consults the fall-back chain for a sub-value this node could not
// decide. With no successor the sub-value is accepted; a successor whose
// boolean schema is false rejects it outright.
func (b *base) fallBack(r *jsonstream.Reader, key []byte, index int) error {
	return fallBackTo(b.alt, r, key, index)
}

func fallBackTo(alt Node, r *jsonstream.Reader, key []byte, index int) error {
	if alt == nil {
		return nil
	}
	if !alt.Allowed() {
		return fail(alt.Name())
	}
	return alt.ValidateAsAlternate(r, key, index)
}

// fail builds the mismatch verdict naming the keyword the instance failed.
func fail(keyword string) error {
	return jserrors.NewMismatch(keyword)
}
