package jsonschema

import (
	"fmt"
	"io"
	"sync"
)

// Engine compiles a schema once and validates many documents efficiently.
// It is safe for concurrent use by multiple goroutines.
type Engine struct {
	schema *Schema
	pool   sync.Pool
}

// Session holds per-document scratch for validation. Sessions are not safe
// for concurrent use.
type Session struct {
	engine *Engine
	buf    []byte
}

// NewEngine compiles a schema and returns an engine with a session pool.
func NewEngine(schema []byte, opts ...CompileOption) (*Engine, error) {
	s, err := Compile(schema, opts...)
	if err != nil {
		return nil, err
	}
	return newEngine(s), nil
}

// EngineFor wraps an already compiled schema.
func EngineFor(s *Schema) *Engine {
	if s == nil {
		return nil
	}
	return newEngine(s)
}

// Schema returns the engine's compiled schema.
func (e *Engine) Schema() *Schema {
	if e == nil {
		return nil
	}
	return e.schema
}

// Validate validates a document using a pooled session.
func (e *Engine) Validate(r io.Reader, opts ...ValidateOption) error {
	if e == nil || e.schema == nil {
		return schemaNotLoadedError()
	}
	if r == nil {
		return nilReaderError()
	}
	session := e.acquire()
	err := session.Validate(r, opts...)
	e.release(session)
	return err
}

// ValidateBytes validates a document already held in memory.
func (e *Engine) ValidateBytes(instance []byte) error {
	if e == nil || e.schema == nil {
		return schemaNotLoadedError()
	}
	return e.schema.Validate(instance)
}

// NewSession returns a new, unpooled session bound to this engine.
func (e *Engine) NewSession() *Session {
	if e == nil {
		return nil
	}
	return &Session{engine: e}
}

// Validate validates a document using this session's buffer.
func (s *Session) Validate(r io.Reader, opts ...ValidateOption) error {
	if s == nil || s.engine == nil || s.engine.schema == nil {
		return schemaNotLoadedError()
	}
	if r == nil {
		return nilReaderError()
	}
	cfg := applyValidateOptions(opts)

	buf, err := readInto(s.buf, r)
	s.buf = buf
	if err != nil {
		return fmt.Errorf("read instance: %w", err)
	}
	if cfg.maxDocumentSize > 0 && int64(len(buf)) > cfg.maxDocumentSize {
		return fmt.Errorf("validate: document exceeds %d bytes", cfg.maxDocumentSize)
	}
	return s.engine.schema.Validate(buf)
}

// Reset clears per-document session state while keeping the buffer.
func (s *Session) Reset() {
	if s == nil {
		return
	}
	s.buf = s.buf[:0]
}

func newEngine(s *Schema) *Engine {
	e := &Engine{schema: s}
	e.pool.New = func() any {
		return &Session{engine: e}
	}
	return e
}

func (e *Engine) acquire() *Session {
	if v := e.pool.Get(); v != nil {
		return v.(*Session)
	}
	return &Session{engine: e}
}

func (e *Engine) release(s *Session) {
	if e == nil || s == nil {
		return
	}
	s.Reset()
	e.pool.Put(s)
}

// readInto reads r to EOF, reusing buf's capacity.
func readInto(buf []byte, r io.Reader) ([]byte, error) {
	buf = buf[:0]
	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return buf, err
		}
	}
}
