package jsonstream

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds composite nesting when no explicit limit is set.
const DefaultMaxDepth = 128

// ErrDepth is returned when a document nests composites beyond the
// configured depth limit.
var ErrDepth = errors.New("jsonstream: maximum nesting depth exceeded")

// Kind identifies the type of the JSON value at the cursor.
type Kind uint8

const (
	Invalid Kind = iota
	Object
	Array
	String
	Number
	True
	False
	Null
)

var kindNames = [...]string{
	Invalid: "invalid",
	Object:  "object",
	Array:   "array",
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Scalar reports whether the kind is not a composite.
func (k Kind) Scalar() bool {
	return k >= String && k <= Null
}

// Event is a structural event produced by Next.
type Event uint8

const (
	EventNone Event = iota
	// EventKey reports an object member key; the cursor is positioned at
	// the member value, ready for ReadValue.
	EventKey
	// EventValue reports an array element; the cursor is positioned at the
	// element, ready for ReadValue.
	EventValue
	// EventLevelEnd reports that the current composite was closed.
	EventLevelEnd
	// EventEOF reports that no composite is open.
	EventEOF
)

type frame struct {
	object bool
	first  bool
}

// Reader is a single-pass cursor over a JSON byte range. Forking the
// reader snapshots the cursor so a composite value can be rescanned.
type Reader struct {
	buf      []byte
	stack    []frame
	pos      int
	maxDepth int
	kind     Kind

	// scalar payload span; for strings the span excludes the quotes and
	// keeps escape sequences intact
	valueStart int
	valueEnd   int

	// current member key span, quotes excluded, escapes intact
	keyStart int
	keyEnd   int
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxDepth overrides the composite nesting limit.
func WithMaxDepth(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewReader creates a cursor over buf.
func NewReader(buf []byte, opts ...Option) *Reader {
	r := &Reader{
		buf:      buf,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Fork returns an independent cursor at the same position. The fork owns
// its composite stack; advancing it does not move the receiver.
func (r *Reader) Fork() *Reader {
	c := *r
	c.stack = make([]frame, len(r.stack))
	copy(c.stack, r.stack)
	return &c
}

// Kind returns the kind of the most recently read value.
func (r *Reader) Kind() Kind {
	return r.kind
}

// Depth returns the number of open composites.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// Scalar returns the raw payload bytes of the most recently read scalar.
// String payloads keep their escape sequences.
func (r *Reader) Scalar() []byte {
	return r.buf[r.valueStart:r.valueEnd]
}

// Key returns the raw bytes of the current member key, escapes intact.
func (r *Reader) Key() []byte {
	return r.buf[r.keyStart:r.keyEnd]
}

// KeyQuoted returns the current member key including its surrounding
// quotes, suitable for rescanning as a standalone JSON string value.
func (r *Reader) KeyQuoted() []byte {
	return r.buf[r.keyStart-1 : r.keyEnd+1]
}

// MaxDepth returns the configured nesting limit.
func (r *Reader) MaxDepth() int {
	return r.maxDepth
}

// ReadValue parses the value at the cursor. Scalars are consumed and their
// payload span recorded; composites are entered, leaving the cursor ready
// for Next.
func (r *Reader) ReadValue() error {
	r.skipSpace()
	if r.pos >= len(r.buf) {
		return r.unexpectedEnd()
	}
	switch c := r.buf[r.pos]; {
	case c == '{':
		return r.enter(true, Object)
	case c == '[':
		return r.enter(false, Array)
	case c == '"':
		r.pos++
		start := r.pos
		if err := r.scanString(); err != nil {
			return err
		}
		r.valueStart, r.valueEnd = start, r.pos
		r.pos++
		r.kind = String
		return nil
	case c == 't':
		return r.literal("true", True)
	case c == 'f':
		return r.literal("false", False)
	case c == 'n':
		return r.literal("null", Null)
	case c == '-' || (c >= '0' && c <= '9'):
		start := r.pos
		r.scanNumber()
		r.valueStart, r.valueEnd = start, r.pos
		r.kind = Number
		return nil
	default:
		return fmt.Errorf("jsonstream: unexpected character %q at offset %d", c, r.pos)
	}
}

// Next advances to the next structural event inside the current composite.
// After EventKey or EventValue the caller must consume the pending value
// with ReadValue before calling Next again.
func (r *Reader) Next() (Event, error) {
	if len(r.stack) == 0 {
		return EventEOF, nil
	}
	top := &r.stack[len(r.stack)-1]
	r.skipSpace()
	if r.pos >= len(r.buf) {
		return EventNone, r.unexpectedEnd()
	}
	c := r.buf[r.pos]
	if (top.object && c == '}') || (!top.object && c == ']') {
		r.pos++
		r.stack = r.stack[:len(r.stack)-1]
		return EventLevelEnd, nil
	}
	if top.first {
		top.first = false
	} else {
		if c != ',' {
			return EventNone, fmt.Errorf("jsonstream: expected ',' at offset %d, found %q", r.pos, c)
		}
		r.pos++
		r.skipSpace()
		if r.pos >= len(r.buf) {
			return EventNone, r.unexpectedEnd()
		}
	}
	if !top.object {
		return EventValue, nil
	}
	if r.buf[r.pos] != '"' {
		return EventNone, fmt.Errorf("jsonstream: expected object key at offset %d", r.pos)
	}
	r.pos++
	start := r.pos
	if err := r.scanString(); err != nil {
		return EventNone, err
	}
	r.keyStart, r.keyEnd = start, r.pos
	r.pos++
	r.skipSpace()
	if r.pos >= len(r.buf) || r.buf[r.pos] != ':' {
		return EventNone, fmt.Errorf("jsonstream: expected ':' after key at offset %d", r.pos)
	}
	r.pos++
	return EventKey, nil
}

// SkipLevel consumes input up to and including the matching end of the
// current innermost composite.
func (r *Reader) SkipLevel() error {
	target := len(r.stack) - 1
	if target < 0 {
		return nil
	}
	for len(r.stack) > target {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		switch ev {
		case EventKey, EventValue:
			if err := r.ReadValue(); err != nil {
				return err
			}
		case EventLevelEnd:
		case EventEOF:
			return r.unexpectedEnd()
		}
	}
	return nil
}

// SkipValue consumes the remainder of the most recently read value: a no-op
// for scalars, SkipLevel for composites.
func (r *Reader) SkipValue() error {
	if r.kind.Scalar() {
		return nil
	}
	return r.SkipLevel()
}

// AtEnd reports whether only trailing whitespace remains.
func (r *Reader) AtEnd() bool {
	r.skipSpace()
	return r.pos >= len(r.buf)
}

func (r *Reader) enter(object bool, kind Kind) error {
	if len(r.stack) >= r.maxDepth {
		return ErrDepth
	}
	r.stack = append(r.stack, frame{object: object, first: true})
	r.pos++
	r.kind = kind
	return nil
}

func (r *Reader) literal(word string, kind Kind) error {
	if len(r.buf)-r.pos < len(word) || string(r.buf[r.pos:r.pos+len(word)]) != word {
		return fmt.Errorf("jsonstream: invalid literal at offset %d", r.pos)
	}
	r.valueStart = r.pos
	r.pos += len(word)
	r.valueEnd = r.pos
	r.kind = kind
	return nil
}

func (r *Reader) scanString() error {
	for r.pos < len(r.buf) {
		switch r.buf[r.pos] {
		case '"':
			return nil
		case '\\':
			if r.pos+1 >= len(r.buf) {
				return r.unexpectedEnd()
			}
			r.pos += 2
		default:
			r.pos++
		}
	}
	return r.unexpectedEnd()
}

func (r *Reader) scanNumber() {
	if r.pos < len(r.buf) && r.buf[r.pos] == '-' {
		r.pos++
	}
	for r.pos < len(r.buf) {
		switch c := r.buf[r.pos]; {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
			r.pos++
		default:
			return
		}
	}
}

func (r *Reader) skipSpace() {
	for r.pos < len(r.buf) {
		switch r.buf[r.pos] {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *Reader) unexpectedEnd() error {
	return fmt.Errorf("jsonstream: unexpected end of input at offset %d", r.pos)
}
