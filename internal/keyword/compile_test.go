package keyword

import (
	"errors"
	"testing"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonstream"
)

func TestCompileIdempotence(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {"a": {"type": "string"}, "n": {"minimum": 0}},
		"patternProperties": {"^x": {"type": "number"}},
		"additionalProperties": false,
		"required": ["a"],
		"allOf": [{"minProperties": 1}]
	}`
	instances := []string{
		`{"a":"ok"}`,
		`{"a":"ok","n":-1}`,
		`{"a":"ok","z":1}`,
		`{}`,
		`"not an object"`,
	}

	first, err := Compile([]byte(schema), 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	second, err := Compile([]byte(schema), 0)
	if err != nil {
		t.Fatalf("Compile() second error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("keyword list lengths differ: %d vs %d", len(first), len(second))
	}
	for _, instance := range instances {
		errFirst := Validate(first, []byte(instance), 0)
		errSecond := Validate(second, []byte(instance), 0)
		if (errFirst == nil) != (errSecond == nil) {
			t.Errorf("verdicts differ for %s: %v vs %v", instance, errFirst, errSecond)
		}
	}
}

func TestCompiledListIsReusable(t *testing.T) {
	list, err := Compile([]byte(`{"properties":{"a":{"type":"number"}},"additionalProperties":false}`), 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := Validate(list, []byte(`{"a":1}`), 0); err != nil {
			t.Fatalf("round %d: Validate() error = %v, want pass", i, err)
		}
		if err := Validate(list, []byte(`{"b":1}`), 0); err == nil {
			t.Fatalf("round %d: Validate() = pass, want fail", i)
		}
	}
}

func TestCompileReportsOffendingKeyword(t *testing.T) {
	tests := []struct {
		schema  string
		keyword string
		code    jserrors.ErrorCode
	}{
		{schema: `{"maximum":"3"}`, keyword: "maximum", code: jserrors.ErrCompileInvalidArgument},
		{schema: `{"pattern":"("}`, keyword: "pattern", code: jserrors.ErrCompileInvalidArgument},
		{schema: `{"if":{"type":"string"}}`, keyword: "if", code: jserrors.ErrCompileStructural},
		{schema: `{"then":{"type":"string"}}`, keyword: "then", code: jserrors.ErrCompileStructural},
		{schema: `{"dependentRequired":{"a":5}}`, keyword: "dependentRequired", code: jserrors.ErrCompileStructural},
	}
	for _, tt := range tests {
		_, err := Compile([]byte(tt.schema), 0)
		if err == nil {
			t.Errorf("Compile(%s) = nil error", tt.schema)
			continue
		}
		c, ok := jserrors.AsCompile(err)
		if !ok {
			t.Errorf("Compile(%s) error = %T, want *errors.Compile", tt.schema, err)
			continue
		}
		if c.Keyword != tt.keyword {
			t.Errorf("Compile(%s) keyword = %q, want %q", tt.schema, c.Keyword, tt.keyword)
		}
		if c.Code != string(tt.code) {
			t.Errorf("Compile(%s) code = %q, want %q", tt.schema, c.Code, tt.code)
		}
	}
}

func TestCompileDepthGuard(t *testing.T) {
	schema := []byte(`{"properties":{"a":{"properties":{"b":{"properties":{"c":{"type":"number"}}}}}}}`)
	if _, err := Compile(schema, 4); !errors.Is(err, jsonstream.ErrDepth) {
		t.Fatalf("Compile() error = %v, want ErrDepth", err)
	}
	if _, err := Compile(schema, 0); err != nil {
		t.Fatalf("Compile() with default depth error = %v", err)
	}
}

func TestValidateDepthGuard(t *testing.T) {
	list, err := Compile([]byte(`{"type":"array"}`), 8)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	deep := []byte(`[[[[[[[[[[1]]]]]]]]]]`)
	if err := Validate(list, deep, 8); !errors.Is(err, jsonstream.ErrDepth) {
		t.Fatalf("Validate() error = %v, want ErrDepth", err)
	}
}

func TestBooleanRootSchemas(t *testing.T) {
	pass, err := Compile([]byte(`true`), 0)
	if err != nil {
		t.Fatalf("Compile(true) error = %v", err)
	}
	if err := Validate(pass, []byte(`{"anything":1}`), 0); err != nil {
		t.Errorf("true schema rejected an instance: %v", err)
	}

	reject, err := Compile([]byte(`false`), 0)
	if err != nil {
		t.Fatalf("Compile(false) error = %v", err)
	}
	if err := Validate(reject, []byte(`1`), 0); err == nil {
		t.Error("false schema accepted an instance")
	}
}

func TestStandaloneAdditionalItemsIsInert(t *testing.T) {
	// with no items or prefixItems sibling there is nothing to overflow
	check(t, `{"additionalItems":false}`, `[1,2,3]`, "")
	check(t, `{"items":{"type":"number"},"additionalItems":false}`, `[1,2]`, "")
}

func TestUnknownKeywordsIgnored(t *testing.T) {
	check(t, `{"$defs":{"unused":{"type":"string"}},"type":"number"}`, `5`, "")
	check(t, `{"totallyMadeUp":[1,{"deep":true}],"minimum":3}`, `2`, "minimum")
}
