package keyword

import (
	"fmt"

	"github.com/dlclark/regexp2"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// lengthBound backs minLength and maxLength. Lengths count the raw bytes of
// the scalar payload, escape sequences included, not codepoints.
type lengthBound struct {
	base
	limit int
	max   bool
}

func newLengthBound(name string, max bool) *lengthBound {
	return &lengthBound{base: base{name: name, allowed: true}, max: max}
}

func (l *lengthBound) Ingest(_ *compiler, r *jsonstream.Reader) error {
	limit, err := countArgument(l.name, r)
	if err != nil {
		return err
	}
	l.limit = limit
	return nil
}

func (l *lengthBound) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.String {
		return nil
	}
	n := len(r.Scalar())
	if l.max && n > l.limit {
		return fail(l.name)
	}
	if !l.max && n < l.limit {
		return fail(l.name)
	}
	return nil
}

type patternNode struct {
	base
	re *regexp2.Regexp
}

func newPattern() *patternNode {
	return &patternNode{base: base{name: "pattern", allowed: true}}
}

func (p *patternNode) Ingest(_ *compiler, r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.String {
		return jserrors.NewInvalidArgument(p.name)
	}
	expr, err := jsonstream.Unescape(r.Scalar())
	if err != nil {
		return err
	}
	re, err := regexp2.Compile(string(expr), regexp2.None)
	if err != nil {
		return jserrors.NewInvalidArgument(p.name)
	}
	p.re = re
	return nil
}

func (p *patternNode) Validate(r *jsonstream.Reader) error {
	if r.Kind() != jsonstream.String {
		return nil
	}
	subject, err := jsonstream.Unescape(r.Scalar())
	if err != nil {
		return err
	}
	ok, err := p.re.MatchString(string(subject))
	if err != nil {
		return fmt.Errorf("keyword: pattern match: %w", err)
	}
	if !ok {
		return fail(p.name)
	}
	return nil
}

// matchPattern runs a compiled pattern against an object member key.
func matchPattern(re *regexp2.Regexp, key []byte) (bool, error) {
	ok, err := re.MatchString(string(key))
	if err != nil {
		return false, fmt.Errorf("keyword: pattern match: %w", err)
	}
	return ok, nil
}
