package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies compile and validation outcomes.
type ErrorCode string

const (
	// ErrSchemaNotLoaded indicates validation was attempted without a compiled schema.
	ErrSchemaNotLoaded ErrorCode = "schema-not-loaded"
	// ErrParse indicates an instance document could not be read, as with a
	// nil reader. Malformed JSON is reported as a wrapped jsonstream error.
	ErrParse ErrorCode = "parse"

	// ErrCompileInvalidArgument indicates a keyword argument has the wrong JSON kind.
	ErrCompileInvalidArgument ErrorCode = "compile/invalid-argument"
	// ErrCompileStructural indicates keywords that only make sense together were
	// used apart, for example then without if.
	ErrCompileStructural ErrorCode = "compile/structural"

	// ErrValidateMismatch indicates the instance failed a specific keyword.
	// This is the expected verdict for a non-conforming instance.
	ErrValidateMismatch ErrorCode = "validate/mismatch"
	// ErrValidateStackOverrun indicates nesting depth exceeded the guard.
	ErrValidateStackOverrun ErrorCode = "validate/stack-overrun"
)

// Compile describes a schema compilation failure with the offending keyword.
type Compile struct {
	Code    string
	Keyword string
	Message string
}

// Error formats the compile failure for display.
func (e *Compile) Error() string {
	if e == nil {
		return "compile <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))
	if e.Keyword != "" {
		b.WriteString(fmt.Sprintf(" keyword %q", e.Keyword))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// NewInvalidArgument builds a Compile error for a keyword whose argument has
// the wrong JSON kind.
func NewInvalidArgument(keyword string) *Compile {
	return &Compile{
		Code:    string(ErrCompileInvalidArgument),
		Keyword: keyword,
		Message: "invalid value for keyword",
	}
}

// NewStructural builds a Compile error for interdependent keywords used apart.
func NewStructural(keyword, msg string) *Compile {
	return &Compile{
		Code:    string(ErrCompileStructural),
		Keyword: keyword,
		Message: msg,
	}
}

// AsCompile extracts a compile error from an error chain.
func AsCompile(err error) (*Compile, bool) {
	var c *Compile
	if errors.As(err, &c) && c != nil {
		return c, true
	}
	return nil, false
}

// Validation describes a validation outcome with an error code and the name
// of the keyword the instance failed against.
//
//nolint:errname // public API name uses JSON Schema domain term.
type Validation struct {
	Code    string
	Keyword string
	Message string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Error formats the validation for display, including code and keyword.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", v.Code))
	if v.Message != "" {
		b.WriteString(" ")
		b.WriteString(v.Message)
	}
	if v.Keyword != "" {
		b.WriteString(fmt.Sprintf(" (keyword: %s)", v.Keyword))
	}
	return b.String()
}

// NewValidation builds a Validation with a code, message, and keyword.
func NewValidation(code ErrorCode, msg, keyword string) Validation {
	return Validation{Code: string(code), Message: msg, Keyword: keyword}
}

// NewMismatch builds the verdict for an instance that failed a keyword.
func NewMismatch(keyword string) *Validation {
	return &Validation{
		Code:    string(ErrValidateMismatch),
		Keyword: keyword,
		Message: "instance does not validate",
	}
}

// IsMismatch reports whether err is a keyword mismatch verdict rather than
// a fatal condition such as a parse error or stack overrun.
func IsMismatch(err error) bool {
	var v *Validation
	if errors.As(err, &v) && v != nil {
		return v.Code == string(ErrValidateMismatch)
	}
	return false
}

// AsValidations extracts validation errors from an error returned by
// validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
