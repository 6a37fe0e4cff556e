package introspection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

func TestFetchSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req client.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if req.OperationName != OperationName {
			t.Fatalf("expected operation %q, got %q", OperationName, req.OperationName)
		}
		if !strings.Contains(req.Query, "__schema") {
			t.Fatal("expected introspection query")
		}
		_, _ = w.Write([]byte(`{"data":{"__schema":{"queryType":{"name":"QueryRoot"},"types":[]}}}`))
	}))
	defer server.Close()

	f := NewFetcher(client.New(server.URL))
	schema, err := f.FetchSchema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.QueryTypeName() != "QueryRoot" {
		t.Errorf("expected QueryRoot, got %q", schema.QueryTypeName())
	}
}

func TestFetchSchemaTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewFetcher(client.New(server.URL)).FetchSchema(context.Background())
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got %v", err)
	}
}

func TestFetchSchemaMissingPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	_, err := NewFetcher(client.New(server.URL)).FetchSchema(context.Background())
	if !domain.IsKind(err, domain.KindInvalidSchema) {
		t.Fatalf("expected invalid_schema error, got %v", err)
	}
}
