package keyword

import (
	"fmt"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

// Validate checks an instance document against a compiled keyword list.
// A nil return means the instance conforms; a mismatch names the first
// failing keyword.
func Validate(list List, instance []byte, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = jsonstream.DefaultMaxDepth
	}
	r := jsonstream.NewReader(instance, jsonstream.WithMaxDepth(maxDepth))
	if err := r.ReadValue(); err != nil {
		return err
	}
	if err := validateList(list, r); err != nil {
		return err
	}
	return r.SkipValue()
}

// validateList runs the conjunction for one compiled schema object,
// left to right with short-circuit. Each node sees its own cursor snapshot
// so composite values can be rescanned.
func validateList(list List, r *jsonstream.Reader) error {
	for _, n := range list {
		if err := n.Validate(r.Fork()); err != nil {
			return err
		}
	}
	return nil
}

// listPasses reports whether the conjunction holds, folding mismatch
// verdicts into false while propagating fatal conditions.
func listPasses(list List, r *jsonstream.Reader) (bool, error) {
	if err := validateList(list, r); err != nil {
		if jserrors.IsMismatch(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// eachElement drives fn over every element of the array the cursor has just
// entered. The callback must not advance the cursor it is handed; the value
// is consumed after the callback returns.
func eachElement(r *jsonstream.Reader, fn func(i int, r *jsonstream.Reader) error) error {
	for i := 0; ; i++ {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		switch ev {
		case jsonstream.EventLevelEnd:
			return nil
		case jsonstream.EventValue:
		default:
			return fmt.Errorf("keyword: malformed array")
		}
		if err := consumeValue(r, fn, i); err != nil {
			return err
		}
	}
}

// eachMember drives fn over every member of the object the cursor has just
// entered. The key slice is only valid for the duration of the callback.
func eachMember(r *jsonstream.Reader, fn func(key []byte, r *jsonstream.Reader) error) error {
	for {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		switch ev {
		case jsonstream.EventLevelEnd:
			return nil
		case jsonstream.EventKey:
		default:
			return fmt.Errorf("keyword: malformed object")
		}
		key := r.Key()
		if err := consumeValue(r, func(_ int, r *jsonstream.Reader) error {
			return fn(key, r)
		}, 0); err != nil {
			return err
		}
	}
}

// consumeValue reads the pending value, runs the callback, and consumes
// whatever of the value the callback left behind. Callbacks that only fork
// leave the whole composite; ingest callbacks may consume it themselves.
func consumeValue(r *jsonstream.Reader, fn func(i int, r *jsonstream.Reader) error, i int) error {
	depth := r.Depth()
	if err := r.ReadValue(); err != nil {
		return err
	}
	if err := fn(i, r); err != nil {
		return err
	}
	for r.Depth() > depth {
		if err := r.SkipLevel(); err != nil {
			return err
		}
	}
	return nil
}
