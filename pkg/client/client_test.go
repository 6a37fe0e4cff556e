package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoDecodesData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected json content-type, got %s", ct)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if req.OperationName != "Hero" {
			t.Fatalf("expected operation Hero, got %q", req.OperationName)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"hero":{"name":"R2-D2"}}}`))
	}))
	defer server.Close()

	c := New(server.URL)

	var out struct {
		Hero struct {
			Name string `json:"name"`
		} `json:"hero"`
	}
	err := c.Do(context.Background(), Request{
		Query:         `query Hero { hero { name } }`,
		OperationName: "Hero",
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Hero.Name != "R2-D2" {
		t.Fatalf("expected hero name R2-D2, got %q", out.Hero.Name)
	}
}

func TestDoReturnsGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"boom","path":["hero","name"]}]}`))
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), Request{Query: "{hero{name}}"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	errs, ok := err.(Errors)
	if !ok {
		t.Fatalf("expected Errors, got %T", err)
	}
	if len(errs) != 1 || errs[0].Message != "boom" {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := errs.Error(); got != "boom (path: hero.name)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDoPartialDataWithErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"hero":{"name":"Luke"}},"errors":[{"message":"partial"}]}`))
	}))
	defer server.Close()

	var out struct {
		Hero struct {
			Name string `json:"name"`
		} `json:"hero"`
	}
	err := New(server.URL).Do(context.Background(), Request{Query: "{hero{name}}"}, &out)
	if err == nil {
		t.Fatal("expected error for errors array")
	}
	if out.Hero.Name != "Luke" {
		t.Fatalf("expected partial data decoded, got %q", out.Hero.Name)
	}
}

func TestDoHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such route", http.StatusNotFound)
	}))
	defer server.Close()

	err := New(server.URL).Do(context.Background(), Request{Query: "{x}"}, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestHeadersAndBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		if got := r.Header.Get("X-Custom"); got != "yes" {
			t.Fatalf("expected custom header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	c := New(server.URL, WithBearerToken("s3cret"), WithHeader("X-Custom", "yes"))
	if err := c.Do(context.Background(), Request{Query: "{x}"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRawKeepsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"ok":true},"errors":[{"message":"warn"}]}`))
	}))
	defer server.Close()

	envelope, err := New(server.URL).Raw(context.Background(), Request{Query: "{ok}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(envelope.Data) != `{"ok":true}` {
		t.Fatalf("unexpected data: %s", envelope.Data)
	}
	if len(envelope.Errors) != 1 {
		t.Fatalf("expected envelope errors, got %v", envelope.Errors)
	}
}
