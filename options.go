package jsonschema

import "github.com/jacoelho/jsonschema/pkg/jsonstream"

// CompileOption configures schema compilation.
type CompileOption interface{ apply(*compileOptions) }

// ValidateOption configures validation.
type ValidateOption interface{ apply(*validateOptions) }

type compileOptions struct {
	maxDepth int
}

type validateOptions struct {
	maxDocumentSize int64
}

type compileOptionFunc func(*compileOptions)

func (f compileOptionFunc) apply(cfg *compileOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

type validateOptionFunc func(*validateOptions)

func (f validateOptionFunc) apply(cfg *validateOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithMaxDepth bounds composite nesting for both the schema document and
// the instances validated against it. It is the stack guard: instances
// nesting deeper fail with a stack-overrun error, and a schema nesting
// deeper fails to compile with an error wrapping jsonstream.ErrDepth.
func WithMaxDepth(n int) CompileOption {
	return compileOptionFunc(func(cfg *compileOptions) {
		cfg.maxDepth = n
	})
}

// WithMaxDocumentSize bounds the size of documents accepted by
// reader-based validation.
func WithMaxDocumentSize(n int64) ValidateOption {
	return validateOptionFunc(func(cfg *validateOptions) {
		cfg.maxDocumentSize = n
	})
}

func applyCompileOptions(opts []CompileOption) compileOptions {
	cfg := compileOptions{maxDepth: jsonstream.DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}

func applyValidateOptions(opts []ValidateOption) validateOptions {
	var cfg validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
