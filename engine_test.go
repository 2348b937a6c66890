package jsonschema_test

import (
	"strings"
	"testing"

	"github.com/jacoelho/jsonschema"
)

func TestEngineValidateReader(t *testing.T) {
	engine, err := jsonschema.NewEngine([]byte(`{"type":"object","required":["id"]}`))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if err := engine.Validate(strings.NewReader(`{"id": 1}`)); err != nil {
		t.Fatalf("Validate() error = %v, want pass", err)
	}
	if err := engine.Validate(strings.NewReader(`{"name": "x"}`)); err == nil {
		t.Fatal("Validate() = pass, want fail at required")
	}
	if err := engine.Validate(nil); err == nil {
		t.Fatal("Validate(nil) = nil error")
	}
}

func TestEngineSessionReuse(t *testing.T) {
	engine, err := jsonschema.NewEngine([]byte(`{"minimum":0}`))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	session := engine.NewSession()
	for i := 0; i < 5; i++ {
		if err := session.Validate(strings.NewReader(`3`)); err != nil {
			t.Fatalf("round %d: Validate() error = %v", i, err)
		}
		if err := session.Validate(strings.NewReader(`-3`)); err == nil {
			t.Fatalf("round %d: Validate() = pass, want fail", i)
		}
		session.Reset()
	}
}

func TestEngineMaxDocumentSize(t *testing.T) {
	engine, err := jsonschema.NewEngine([]byte(`{"type":"array"}`))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	doc := `[1,2,3,4,5,6,7,8,9,10]`
	if err := engine.Validate(strings.NewReader(doc), jsonschema.WithMaxDocumentSize(4)); err == nil {
		t.Fatal("Validate() = nil error, want document size error")
	}
	if err := engine.Validate(strings.NewReader(doc), jsonschema.WithMaxDocumentSize(1024)); err != nil {
		t.Fatalf("Validate() error = %v, want pass", err)
	}
}

func TestEngineForSharesSchema(t *testing.T) {
	schema, err := jsonschema.Compile([]byte(`{"const":"x"}`))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	engine := jsonschema.EngineFor(schema)
	if engine.Schema() != schema {
		t.Error("Schema() does not return the wrapped schema")
	}
	if err := engine.ValidateBytes([]byte(`"x"`)); err != nil {
		t.Errorf("ValidateBytes() error = %v, want pass", err)
	}
}
