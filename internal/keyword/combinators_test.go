package keyword

import "testing"

func TestAllOf(t *testing.T) {
	schema := `{"allOf":[{"type":"number"},{"minimum":3}]}`
	check(t, schema, `5`, "")
	check(t, schema, `2`, "allOf")
	check(t, schema, `"x"`, "allOf")
}

func TestAnyOf(t *testing.T) {
	schema := `{"anyOf":[{"type":"string"},{"minimum":10}]}`
	check(t, schema, `"x"`, "")
	check(t, schema, `15`, "")
	check(t, schema, `5`, "anyOf")
}

func TestOneOfCounting(t *testing.T) {
	schema := `{"oneOf":[{"type":"number"},{"type":"integer"}]}`
	check(t, schema, `5.5`, "")
	check(t, schema, `5`, "oneOf")
	check(t, schema, `"x"`, "oneOf")
}

func TestNot(t *testing.T) {
	check(t, `{"not":{"type":"string"}}`, `5`, "")
	check(t, `{"not":{"type":"string"}}`, `"x"`, "not")
	// the sub-schema fails when any of its keywords fails
	check(t, `{"not":{"type":"string","minLength":5}}`, `"abc"`, "")
	check(t, `{"not":{"type":"string","minLength":2}}`, `"abc"`, "not")
}

func TestCombinatorsEvaluateInSourceOrder(t *testing.T) {
	// deterministic counting: both branches pass for 4
	schema := `{"oneOf":[{"multipleOf":2},{"multipleOf":4}]}`
	check(t, schema, `2`, "")
	check(t, schema, `4`, "oneOf")
}

func TestConditional(t *testing.T) {
	schema := `{
		"if": {"properties": {"k": {"const": "A"}}, "required": ["k"]},
		"then": {"required": ["x"]},
		"else": {"required": ["y"]}
	}`
	tests := []struct {
		name     string
		instance string
		wantFail string
	}{
		{name: "then branch", instance: `{"k":"A","x":1}`},
		{name: "else branch", instance: `{"k":"B","y":1}`},
		{name: "then branch unmet", instance: `{"k":"A"}`, wantFail: "required"},
		{name: "else branch unmet", instance: `{"k":"B"}`, wantFail: "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, schema, tt.instance, tt.wantFail)
		})
	}
}

func TestConditionalWithoutElse(t *testing.T) {
	schema := `{"if":{"type":"string"},"then":{"minLength":2}}`
	check(t, schema, `"ab"`, "")
	check(t, schema, `"a"`, "minLength")
	check(t, schema, `5`, "")
}

func TestConditionalStructuralErrors(t *testing.T) {
	for _, schema := range []string{
		`{"if":{"type":"string"}}`,
		`{"then":{"minLength":2}}`,
		`{"else":{"minLength":2}}`,
		`{"then":{"minLength":2},"else":{"maxLength":4}}`,
	} {
		if _, err := Compile([]byte(schema), 0); err == nil {
			t.Errorf("Compile(%s) = nil error, want structural error", schema)
		}
	}
}

func TestUnevaluatedPropertiesThroughChain(t *testing.T) {
	schema := `{
		"allOf": [{"type": "object"}],
		"unevaluatedProperties": false,
		"properties": {"a": {}}
	}`
	check(t, schema, `{"a":1}`, "")
	check(t, schema, `{"a":1,"b":2}`, "unevaluatedProperties")
}

func TestUnevaluatedPropertiesThreadedIntoCombinator(t *testing.T) {
	schema := `{
		"allOf": [{"properties": {"a": {"type": "number"}}}],
		"unevaluatedProperties": false
	}`
	check(t, schema, `{"a":1}`, "")
	check(t, schema, `{"a":1,"b":2}`, "allOf")
}

func TestUnevaluatedItemsThreadedIntoCombinator(t *testing.T) {
	schema := `{
		"allOf": [{"prefixItems": [{"type": "string"}]}],
		"unevaluatedItems": false
	}`
	check(t, schema, `["a"]`, "")
	check(t, schema, `["a", 1]`, "allOf")
}

func TestUnevaluatedItemsInChain(t *testing.T) {
	schema := `{"prefixItems":[{"type":"string"}],"unevaluatedItems":false}`
	check(t, schema, `["a"]`, "")
	check(t, schema, `["a",1]`, "unevaluatedItems")
}
