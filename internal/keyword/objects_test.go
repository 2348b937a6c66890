package keyword

import (
	"testing"

	jserrors "github.com/jacoelho/jsonschema/errors"
)

func TestPropertiesChain(t *testing.T) {
	schema := `{
		"properties": {"a": {"type": "string"}},
		"patternProperties": {"^x": {"type": "number"}},
		"additionalProperties": false
	}`
	tests := []struct {
		name     string
		instance string
		wantFail string
	}{
		{name: "named and pattern keys", instance: `{"a":"ok","x1":3}`},
		{name: "unclaimed key rejected", instance: `{"a":"ok","z":1}`, wantFail: "additionalProperties"},
		{name: "named key wrong type", instance: `{"a":1}`, wantFail: "type"},
		{name: "pattern key wrong type", instance: `{"x1":"no"}`, wantFail: "type"},
		{name: "empty object", instance: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, schema, tt.instance, tt.wantFail)
		})
	}
}

func TestFallBackExhaustiveness(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance string
		wantFail string
	}{
		{
			name:     "no chain tail accepts unclaimed keys",
			schema:   `{"properties":{"a":{}}}`,
			instance: `{"a":1,"b":2}`,
		},
		{
			name:     "permissive tail accepts",
			schema:   `{"properties":{"a":{}},"additionalProperties":true}`,
			instance: `{"b":2}`,
		},
		{
			name:     "schema tail validates",
			schema:   `{"properties":{"a":{}},"additionalProperties":{"type":"number"}}`,
			instance: `{"b":2}`,
		},
		{
			name:     "schema tail rejects",
			schema:   `{"properties":{"a":{}},"additionalProperties":{"type":"number"}}`,
			instance: `{"b":"x"}`,
			wantFail: "type",
		},
		{
			name:     "forbidding tail rejects",
			schema:   `{"properties":{"a":{}},"additionalProperties":false}`,
			instance: `{"b":2}`,
			wantFail: "additionalProperties",
		},
		{
			name:     "standalone additionalProperties false rejects any key",
			schema:   `{"additionalProperties":false}`,
			instance: `{"a":1}`,
			wantFail: "additionalProperties",
		},
		{
			name:     "standalone additionalProperties false accepts empty",
			schema:   `{"additionalProperties":false}`,
			instance: `{}`,
		},
		{
			name:     "pattern falls through to additional",
			schema:   `{"patternProperties":{"^x":{}},"additionalProperties":false}`,
			instance: `{"x1":1,"y":2}`,
			wantFail: "additionalProperties",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, tt.schema, tt.instance, tt.wantFail)
		})
	}
}

func TestPatternPropertiesConjunction(t *testing.T) {
	// every matching pattern contributes to the key's conjunction
	schema := `{
		"patternProperties": {
			"^a": {"type": "number"},
			"b$": {"maximum": 10}
		}
	}`
	check(t, schema, `{"ab": 5}`, "")
	check(t, schema, `{"ab": 11}`, "maximum")
	check(t, schema, `{"ab": "x"}`, "type")
	check(t, schema, `{"zz": "unclaimed"}`, "")
}

func TestPropertyNames(t *testing.T) {
	schema := `{"propertyNames":{"maxLength":3,"pattern":"^[a-z]+$"}}`
	tests := []struct {
		name     string
		instance string
		wantFail string
	}{
		{name: "short lowercase keys", instance: `{"ab":1,"xyz":2}`},
		{name: "key too long", instance: `{"abcd":1}`, wantFail: "maxLength"},
		{name: "key wrong alphabet", instance: `{"AB":1}`, wantFail: "pattern"},
		{name: "not an object", instance: `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, schema, tt.instance, tt.wantFail)
		})
	}
}

func TestRequired(t *testing.T) {
	schema := `{"required":["a","b"]}`
	check(t, schema, `{"a":1,"b":2,"c":3}`, "")
	check(t, schema, `{"a":1}`, "required")
	check(t, schema, `{}`, "required")

	if _, err := Compile([]byte(`{"required":[1]}`), 0); err == nil {
		t.Error("Compile required with non-string name = nil error, want invalid argument")
	}
}

func TestDependentRequired(t *testing.T) {
	schema := `{"dependentRequired":{"credit_card":["billing_address"]}}`
	check(t, schema, `{"credit_card":1,"billing_address":"x"}`, "")
	check(t, schema, `{"credit_card":1}`, "dependentRequired")
	check(t, schema, `{"name":"no trigger"}`, "")
}

func TestDependentRequiredArgumentErrors(t *testing.T) {
	for _, schema := range []string{
		`{"dependentRequired":{"a":"b"}}`,
		`{"dependentRequired":{"a":[1]}}`,
		`{"dependentRequired":[1]}`,
	} {
		_, err := Compile([]byte(schema), 0)
		if err == nil {
			t.Errorf("Compile(%s) = nil error, want compile failure", schema)
			continue
		}
		if _, ok := jserrors.AsCompile(err); !ok {
			t.Errorf("Compile(%s) error = %T, want *errors.Compile", schema, err)
		}
	}
}

func TestPropertyCounts(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance string
		wantFail string
	}{
		{name: "minProperties met", schema: `{"minProperties":2}`, instance: `{"a":1,"b":2}`},
		{name: "minProperties unmet", schema: `{"minProperties":2}`, instance: `{"a":1}`, wantFail: "minProperties"},
		{name: "maxProperties met", schema: `{"maxProperties":2}`, instance: `{"a":1,"b":2}`},
		{name: "maxProperties exceeded", schema: `{"maxProperties":1}`, instance: `{"a":1,"b":2}`, wantFail: "maxProperties"},
		{name: "nested members count once", schema: `{"maxProperties":1}`, instance: `{"a":{"x":1,"y":2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, tt.schema, tt.instance, tt.wantFail)
		})
	}
}

func TestBooleanSubSchemas(t *testing.T) {
	check(t, `{"properties":{"a":true,"b":false}}`, `{"a":123}`, "")
	check(t, `{"properties":{"a":true,"b":false}}`, `{"b":1}`, "false")
	check(t, `{"items":{"type":"array"}}`, `[[1],[2]]`, "")
}
