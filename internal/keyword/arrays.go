package keyword

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// prefixItems owns one compiled sub-schema per tuple position. Elements
// beyond the tuple are delegated to the fall-back chain together with
// their position.
type prefixItems struct {
	base
	lists []List
}

func newPrefixItems(name string) *prefixItems {
	return &prefixItems{base: base{name: name, priority: prioPrimary, allowed: true}}
}

func (p *prefixItems) Ingest(c *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return jserrors.NewInvalidArgument(p.name)
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
			return jserrors.NewInvalidArgument(p.name)
		}
		if err := r.ReadValue(); err != nil {
			return err
		}
		list, err := c.compileSchema(r)
		if err != nil {
			return err
		}
		p.lists = append(p.lists, list)
	}
}

func (p *prefixItems) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return nil
	}
	return p.validateArray(r, p.alt)
}

// validateArray walks the elements, validating positionally and handing
// overflow to the fall-back chain with the running index.
func (p *prefixItems) validateArray(r *jsonstream.Reader, alt Node) error {
	return eachElement(r, func(i int, r *jsonstream.Reader) error {
		if i < len(p.lists) {
			return validateList(p.lists[i], r)
		}
		return fallBackTo(alt, r, nil, i)
	})
}

// items has two compiled shapes: an object argument applies one sub-schema
// to every element; an array argument is reinterpreted positionally, kept
// for compatibility with pre-2020-12 documents. A boolean argument only
// sets the allowed flag.
type items struct {
	base
	prefix    *prefixItems
	schema    List
	hasSchema bool
}

func newItems(kind jsonstream.Kind) *items {
	allowed := kind == jsonstream.True || kind == jsonstream.Object || kind == jsonstream.Array
	return &items{base: base{name: "items", priority: prioSecondary, allowed: allowed}}
}

func (i *items) Ingest(c *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.Object:
		schema, err := c.compileObject(r)
		if err != nil {
			return err
		}
		i.schema = schema
		i.hasSchema = true
		return nil
	case jsonstream.Array:
		p := newPrefixItems(i.name)
		if err := p.Ingest(c, r); err != nil {
			return err
		}
		i.prefix = p
		return nil
	case jsonstream.True, jsonstream.False:
		return nil
	default:
		return jserrors.NewInvalidArgument(i.name)
	}
}

func (i *items) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return nil
	}
	switch {
	case i.prefix != nil:
		return i.prefix.validateArray(r, i.alt)
	case i.hasSchema:
		return eachElement(r, func(idx int, r *jsonstream.Reader) error {
			return i.validateElement(r, idx)
		})
	default:
		if !i.allowed {
			return fail(i.name)
		}
		return nil
	}
}

func (i *items) ValidateAsAlternate(r *jsonstream.Reader, key []byte, index int) error {
	switch {
	case i.prefix != nil:
		// the tuple ran out upstream; continue positionally here
		if index < 0 || index >= len(i.prefix.lists) {
			return fail(i.name)
		}
		if err := validateList(i.prefix.lists[index], r); err != nil {
			if !jserrors.IsMismatch(err) {
				return err
			}
			return i.fallBack(r, key, index)
		}
		return nil
	case i.hasSchema:
		return i.validateElement(r, index)
	default:
		if !i.allowed {
			return fail(i.name)
		}
		return nil
	}
}

// validateElement checks one element against the single sub-schema. The
// sub-schema claims every element, so a mismatch is final.
func (i *items) validateElement(r *jsonstream.Reader, _ int) error {
	return validateList(i.schema, r)
}

// additionalNode backs additionalItems, additionalProperties,
// unevaluatedItems and unevaluatedProperties: one owned sub-schema, an
// allowed flag set by a boolean argument, applied to whatever reaches it
// through the fall-back chain or, when it heads the chain, to every
// sub-value. The unevaluated pair does not enforce its allowed flag when
// invoked directly: unclaimed values are rejected only through chains and
// combinator threading.
type additionalNode struct {
	base
	schema     List
	properties bool
	enforce    bool
}

func newAdditional(name string, priority int, properties bool, kind jsonstream.Kind) *additionalNode {
	return &additionalNode{
		base:       base{name: name, priority: priority, allowed: kind != jsonstream.False},
		properties: properties,
		enforce:    priority == prioAdditional,
	}
}

func (a *additionalNode) Ingest(c *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.Object:
		schema, err := c.compileObject(r)
		if err != nil {
			return err
		}
		a.schema = schema
		return nil
	case jsonstream.True, jsonstream.False:
		return nil
	default:
		return jserrors.NewInvalidArgument(a.name)
	}
}

func (a *additionalNode) Validate(r *jsonstream.Reader) error {
	if a.properties {
		if r.Kind() != jsonstream.Object {
			return nil
		}
		return eachMember(r, func(_ []byte, r *jsonstream.Reader) error {
			return a.apply(r)
		})
	}
	if r.Kind() != jsonstream.Array {
		return nil
	}
	return eachElement(r, func(_ int, r *jsonstream.Reader) error {
		return a.apply(r)
	})
}

func (a *additionalNode) ValidateAsAlternate(r *jsonstream.Reader, _ []byte, _ int) error {
	if !a.allowed {
		return fail(a.name)
	}
	return validateList(a.schema, r)
}

func (a *additionalNode) apply(r *jsonstream.Reader) error {
	if a.enforce && !a.allowed {
		return fail(a.name)
	}
	return validateList(a.schema, r)
}

// containsBound carries minContains or maxContains. The node is inert on
// its own; a sibling contains adopts it during the interdependence pass.
type containsBound struct {
	base
	value int
}

func newContainsBound(name string) *containsBound {
	return &containsBound{base: base{name: name, allowed: true}}
}

func (c *containsBound) Ingest(_ *compiler, r *jsonstream.Reader) error {
	v, err := countArgument(c.name, r)
	if err != nil {
		return err
	}
	c.value = v
	return nil
}

func (c *containsBound) Validate(_ *jsonstream.Reader) error {
	return nil
}

// containsNode counts the elements its sub-schema accepts and applies the
// adopted bounds; without bounds the count must be positive.
type containsNode struct {
	base
	schema List
	min    *containsBound
	max    *containsBound
}

func newContains() *containsNode {
	return &containsNode{base: base{name: "contains", allowed: true}}
}

func (c *containsNode) SetDependents(minNode, maxNode Node) {
	if b, ok := minNode.(*containsBound); ok {
		c.min = b
	}
	if b, ok := maxNode.(*containsBound); ok {
		c.max = b
	}
}

func (c *containsNode) Ingest(cc *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return jserrors.NewInvalidArgument(c.name)
	}
	schema, err := cc.compileObject(r)
	if err != nil {
		return err
	}
	c.schema = schema
	return nil
}

func (c *containsNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return nil
	}
	count := 0
	err := eachElement(r, func(_ int, r *jsonstream.Reader) error {
		pass, err := listPasses(c.schema, r)
		if err != nil {
			return err
		}
		if pass {
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	min := 1
	if c.min != nil {
		min = c.min.value
	}
	if count < min {
		if c.min != nil {
			return fail(c.min.name)
		}
		return fail(c.name)
	}
	if c.max != nil && count > c.max.value {
		return fail(c.max.name)
	}
	return nil
}

type uniqueItems struct {
	base
	unique bool
}

func newUniqueItems() *uniqueItems {
	return &uniqueItems{base: base{name: "uniqueItems", allowed: true}}
}

func (u *uniqueItems) Ingest(_ *compiler, r *jsonstream.Reader) error {
	switch r.Kind() {
	case jsonstream.True:
		u.unique = true
		return nil
	case jsonstream.False:
		return nil
	default:
		return jserrors.NewInvalidArgument(u.name)
	}
}

func (u *uniqueItems) Validate(r *jsonstream.Reader) error {
	if !u.unique || r.Kind() != jsonstream.Array {
		return nil
	}
	seen := make(map[string]struct{})
	var scalar uint8
	return eachElement(r, func(_ int, r *jsonstream.Reader) error {
		// booleans and null collide trivially; track them as bits instead
		// of normalising
		switch r.Kind() {
		case jsonstream.True:
			if scalar&hasTrue != 0 {
				return fail(u.name)
			}
			scalar |= hasTrue
			return nil
		case jsonstream.False:
			if scalar&hasFalse != 0 {
				return fail(u.name)
			}
			scalar |= hasFalse
			return nil
		case jsonstream.Null:
			if scalar&hasNull != 0 {
				return fail(u.name)
			}
			scalar |= hasNull
			return nil
		}
		canon, err := r.Fork().Normalize(nil)
		if err != nil {
			return err
		}
		if _, dup := seen[string(canon)]; dup {
			return fail(u.name)
		}
		seen[string(canon)] = struct{}{}
		return nil
	})
}

// itemsCount backs minItems and maxItems.
type itemsCount struct {
	base
	limit int
	max   bool
}

func newItemsCount(name string, max bool) *itemsCount {
	return &itemsCount{base: base{name: name, allowed: true}, max: max}
}

func (i *itemsCount) Ingest(_ *compiler, r *jsonstream.Reader) error {
	limit, err := countArgument(i.name, r)
	if err != nil {
		return err
	}
	i.limit = limit
	return nil
}

func (i *itemsCount) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return nil
	}
	count := 0
	if err := eachElement(r, func(_ int, _ *jsonstream.Reader) error {
		count++
		return nil
	}); err != nil {
		return err
	}
	if i.max && count > i.limit {
		return fail(i.name)
	}
	if !i.max && count < i.limit {
		return fail(i.name)
	}
	return nil
}
