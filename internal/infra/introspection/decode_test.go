package introspection

import (
	"strings"
	"testing"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

const wrapped = `{"data":{"__schema":{"queryType":{"name":"Query"},"types":[{"kind":"OBJECT","name":"Query"}]}}}`
const bare = `{"__schema":{"queryType":{"name":"Query"},"types":[{"kind":"OBJECT","name":"Query"}]}}`

func TestParseJSONEnvelopes(t *testing.T) {
	for _, input := range []string{wrapped, bare} {
		schema, err := ParseJSON([]byte(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if schema.QueryTypeName() != "Query" {
			t.Errorf("expected Query root, got %q", schema.QueryTypeName())
		}
		if len(schema.Types) != 1 || schema.Types[0].Kind != domain.KindObject {
			t.Errorf("unexpected types: %+v", schema.Types)
		}
	}
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"not_a_schema":true}`)); !domain.IsKind(err, domain.KindInvalidSchema) {
		t.Fatalf("expected invalid_schema error, got %v", err)
	}
	if _, err := ParseJSON([]byte(`{{{`)); !domain.IsKind(err, domain.KindInvalidSchema) {
		t.Fatalf("expected invalid_schema error, got %v", err)
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	schema, err := ParseJSON([]byte(wrapped))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := EncodeJSON(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"__schema"`) {
		t.Fatalf("expected data envelope, got: %s", b)
	}

	again, err := ParseJSON(b)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if again.QueryTypeName() != "Query" {
		t.Errorf("round trip lost query root")
	}
}
