package keyword

import (
	"github.com/dlclark/regexp2"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// propertiesNode owns a sub-schema per property name. Keys the map does not
// cover are handed to the fall-back chain. The instance is walked in
// streaming order; nothing is buffered.
type propertiesNode struct {
	base
	schemas map[string]List
}

func newProperties() *propertiesNode {
	return &propertiesNode{
		base:    base{name: "properties", priority: prioPrimary, allowed: true},
		schemas: make(map[string]List),
	}
}

func (p *propertiesNode) Ingest(c *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return jserrors.NewInvalidArgument(p.name)
	}
	return eachSchemaMember(c, r, func(name string, list List) error {
		p.schemas[name] = list
		return nil
	})
}

func (p *propertiesNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	return eachMember(r, func(key []byte, r *jsonstream.Reader) error {
		name, err := jsonstream.Unescape(key)
		if err != nil {
			return err
		}
		if list, ok := p.schemas[string(name)]; ok {
			return validateList(list, r)
		}
		return p.fallBack(r, name, -1)
	})
}

func (p *propertiesNode) ValidateAsAlternate(r *jsonstream.Reader, key []byte, _ int) error {
	if list, ok := p.schemas[string(key)]; ok {
		return validateList(list, r)
	}
	return nil
}

type patternProperty struct {
	re   *regexp2.Regexp
	list List
}

// patternPropertiesNode owns (pattern, sub-schema) pairs. Every matching
// pattern contributes its sub-schema to a key's conjunction; a key no
// pattern matches is handed to the fall-back chain.
type patternPropertiesNode struct {
	base
	patterns []patternProperty
}

func newPatternProperties() *patternPropertiesNode {
	return &patternPropertiesNode{base: base{name: "patternProperties", priority: prioSecondary, allowed: true}}
}

func (p *patternPropertiesNode) Ingest(c *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return jserrors.NewInvalidArgument(p.name)
	}
	return eachSchemaMember(c, r, func(name string, list List) error {
		re, err := regexp2.Compile(name, regexp2.None)
		if err != nil {
			return jserrors.NewInvalidArgument(p.name)
		}
		p.patterns = append(p.patterns, patternProperty{re: re, list: list})
		return nil
	})
}

func (p *patternPropertiesNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	return eachMember(r, func(key []byte, r *jsonstream.Reader) error {
		name, err := jsonstream.Unescape(key)
		if err != nil {
			return err
		}
		return p.validateKey(r, name)
	})
}

func (p *patternPropertiesNode) ValidateAsAlternate(r *jsonstream.Reader, key []byte, _ int) error {
	return p.validateKey(r, key)
}

func (p *patternPropertiesNode) validateKey(r *jsonstream.Reader, key []byte) error {
	matched := false
	for _, pat := range p.patterns {
		ok, err := matchPattern(pat.re, key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		matched = true
		if err := validateList(pat.list, r); err != nil {
			return err
		}
	}
	if !matched {
		return p.fallBack(r, key, -1)
	}
	return nil
}

// propertyNamesNode applies its sub-schema to each member key, rescanning
// the quoted key bytes as a standalone string value.
type propertyNamesNode struct {
	base
	schema List
}

func newPropertyNames() *propertyNamesNode {
	return &propertyNamesNode{base: base{name: "propertyNames", allowed: true}}
}

func (p *propertyNamesNode) Ingest(c *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return jserrors.NewInvalidArgument(p.name)
	}
	schema, err := c.compileObject(r)
	if err != nil {
		return err
	}
	p.schema = schema
	return nil
}

func (p *propertyNamesNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if ev == jsonstream.EventLevelEnd {
			return nil
		}
		if ev != jsonstream.EventKey {
			return jserrors.NewInvalidArgument(p.name)
		}
		kr := jsonstream.NewReader(r.KeyQuoted(), jsonstream.WithMaxDepth(r.MaxDepth()))
		if err := kr.ReadValue(); err != nil {
			return err
		}
		if err := validateList(p.schema, kr); err != nil {
			return err
		}
		if err := r.ReadValue(); err != nil {
			return err
		}
		if err := r.SkipValue(); err != nil {
			return err
		}
	}
}

// requiredNode scans the object's keys into a set and checks every listed
// name is present.
type requiredNode struct {
	base
	names []string
}

func newRequired() *requiredNode {
	return &requiredNode{base: base{name: "required", allowed: true}}
}

func (q *requiredNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Array {
		return jserrors.NewInvalidArgument(q.name)
	}
	return eachElement(r, func(_ int, r *jsonstream.Reader) error {
		if r.Kind() != jsonstream.String {
			return jserrors.NewInvalidArgument(q.name)
		}
		name, err := jsonstream.Unescape(r.Scalar())
		if err != nil {
			return err
		}
		q.names = append(q.names, string(name))
		return nil
	})
}

func (q *requiredNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	keys, err := collectKeys(r)
	if err != nil {
		return err
	}
	for _, name := range q.names {
		if _, ok := keys[name]; !ok {
			return fail(q.name)
		}
	}
	return nil
}

type dependency struct {
	trigger    string
	dependents []string
}

// dependentRequiredNode: for every trigger key present in the instance,
// each dependent key must also be present.
type dependentRequiredNode struct {
	base
	deps []dependency
}

func newDependentRequired() *dependentRequiredNode {
	return &dependentRequiredNode{base: base{name: "dependentRequired", allowed: true}}
}

func (d *dependentRequiredNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return jserrors.NewInvalidArgument(d.name)
	}
	return eachMember(r, func(key []byte, r *jsonstream.Reader) error {
		trigger, err := jsonstream.Unescape(key)
		if err != nil {
			return err
		}
		if r.Kind() != jsonstream.Array {
			return jserrors.NewStructural(d.name, "entry value must be an array of property names")
		}
		dep := dependency{trigger: string(trigger)}
		err = eachElement(r, func(_ int, r *jsonstream.Reader) error {
			if r.Kind() != jsonstream.String {
				return jserrors.NewStructural(d.name, "dependent name must be a string")
			}
			name, err := jsonstream.Unescape(r.Scalar())
			if err != nil {
				return err
			}
			dep.dependents = append(dep.dependents, string(name))
			return nil
		})
		if err != nil {
			return err
		}
		d.deps = append(d.deps, dep)
		return nil
	})
}

func (d *dependentRequiredNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	keys, err := collectKeys(r)
	if err != nil {
		return err
	}
	for _, dep := range d.deps {
		if _, ok := keys[dep.trigger]; !ok {
			continue
		}
		for _, name := range dep.dependents {
			if _, ok := keys[name]; !ok {
				return fail(d.name)
			}
		}
	}
	return nil
}

// propsCount backs minProperties and maxProperties.
type propsCount struct {
	base
	limit int
	max   bool
}

func newPropsCount(name string, max bool) *propsCount {
	return &propsCount{base: base{name: name, allowed: true}, max: max}
}

func (p *propsCount) Ingest(_ *compiler, r *jsonstream.Reader) error {
	limit, err := countArgument(p.name, r)
	if err != nil {
		return err
	}
	p.limit = limit
	return nil
}

func (p *propsCount) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.Object {
		return nil
	}
	count := 0
	if err := eachMember(r, func(_ []byte, _ *jsonstream.Reader) error {
		count++
		return nil
	}); err != nil {
		return err
	}
	if p.max && count > p.limit {
		return fail(p.name)
	}
	if !p.max && count < p.limit {
		return fail(p.name)
	}
	return nil
}

// eachSchemaMember walks an object of (name, schema) members, compiling
// each value as a sub-schema.
func eachSchemaMember(c *compiler, r *jsonstream.Reader, fn func(name string, list List) error) error {
	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if ev == jsonstream.EventLevelEnd {
			return nil
		}
		if ev != jsonstream.EventKey {
			return jserrors.NewInvalidArgument("schema")
		}
		name, err := jsonstream.Unescape(r.Key())
		if err != nil {
			return err
		}
		nameCopy := string(name)
		if err := r.ReadValue(); err != nil {
			return err
		}
		list, err := c.compileSchema(r)
		if err != nil {
			return err
		}
		if err := fn(nameCopy, list); err != nil {
			return err
		}
	}
}

// collectKeys reads every member key of the object at the cursor into a set.
func collectKeys(r *jsonstream.Reader) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := eachMember(r, func(key []byte, _ *jsonstream.Reader) error {
		name, err := jsonstream.Unescape(key)
		if err != nil {
			return err
		}
		keys[string(name)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
