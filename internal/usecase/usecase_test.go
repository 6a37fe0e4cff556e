package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/davidgraeff/graphql-client/internal/codegen"
	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

type fakeFetcher struct {
	schema *domain.Schema
	err    error
}

func (f *fakeFetcher) FetchSchema(context.Context) (*domain.Schema, error) {
	return f.schema, f.err
}

func TestIntrospectSchemaExecute(t *testing.T) {
	want := &domain.Schema{QueryType: &domain.TypeName{Name: "Query"}}
	uc := NewIntrospectSchema(&fakeFetcher{schema: want})

	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != want {
		t.Fatalf("Execute returned %+v, want %+v", got, want)
	}
}

func TestIntrospectSchemaExecuteError(t *testing.T) {
	boom := errors.New("endpoint down")
	uc := NewIntrospectSchema(&fakeFetcher{err: boom})

	if _, err := uc.Execute(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Execute error = %v, want %v", err, boom)
	}
}

type fakeResolver struct {
	schema *ast.Schema
	err    error
}

func (f *fakeResolver) ResolveSchema(context.Context) (*ast.Schema, error) {
	return f.schema, f.err
}

func testSchema(t *testing.T) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: `
		type Query {
			hero(id: ID!): Hero
		}
		type Hero {
			id: ID!
			name: String!
		}
	`})
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	return schema
}

func TestGenerateCodeExecute(t *testing.T) {
	dir := t.TempDir()
	queryPath := filepath.Join(dir, "HeroQuery.graphql")
	query := "query Hero($id: ID!) { hero(id: $id) { id name } }"
	if err := os.WriteFile(queryPath, []byte(query), 0o644); err != nil {
		t.Fatalf("write query: %v", err)
	}

	uc := NewGenerateCode(&fakeResolver{schema: testSchema(t)})
	out, err := uc.Execute(context.Background(), GenerateParams{
		QueryPath:       queryPath,
		OutputDirectory: filepath.Join(dir, "generated"),
		Options:         codegen.Options{PackageName: "heroes"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if want := filepath.Join(dir, "generated", "hero_query.go"); out.OutputPath != want {
		t.Fatalf("OutputPath = %q, want %q", out.OutputPath, want)
	}
	if len(out.Operations) != 1 || out.Operations[0] != "Hero" {
		t.Fatalf("Operations = %v, want [Hero]", out.Operations)
	}

	src, err := os.ReadFile(out.OutputPath)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.Contains(string(src), "package heroes") {
		t.Fatalf("generated file missing package clause:\n%s", src)
	}
}

func TestGenerateCodeExecuteMissingQuery(t *testing.T) {
	uc := NewGenerateCode(&fakeResolver{schema: testSchema(t)})
	_, err := uc.Execute(context.Background(), GenerateParams{
		QueryPath:       filepath.Join(t.TempDir(), "missing.graphql"),
		OutputDirectory: t.TempDir(),
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("Execute error = %v, want kind %s", err, domain.KindNotFound)
	}
}

func TestGeneratedFileName(t *testing.T) {
	cases := map[string]string{
		"queries/HeroQuery.graphql": "hero_query.go",
		"hero.gql":                  "hero.go",
		"CreateReview.graphql":      "create_review.go",
	}
	for in, want := range cases {
		if got := generatedFileName(in); got != want {
			t.Errorf("generatedFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeTransport struct {
	req  client.Request
	resp client.Response
	err  error
}

func (f *fakeTransport) Raw(_ context.Context, req client.Request) (client.Response, error) {
	f.req = req
	return f.resp, f.err
}

func TestRunQueryExecute(t *testing.T) {
	tr := &fakeTransport{resp: client.Response{
		Data: json.RawMessage(`{"hero":{"name":"Luke","friends":[{"name":"Han"}]}}`),
	}}
	uc := NewRunQuery(tr)

	out, err := uc.Execute(context.Background(), RunParams{
		QueryPath: "hero.graphql",
		Query:     "query Hero { hero { name friends { name } } }",
		Extracts: map[string]string{
			"heroName": "$.hero.name",
			"missing":  "$.hero.homePlanet",
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.OperationName != "Hero" {
		t.Errorf("OperationName = %q, want Hero", out.OperationName)
	}
	if tr.req.OperationName != "Hero" {
		t.Errorf("request OperationName = %q, want Hero", tr.req.OperationName)
	}

	if len(out.Extracts) != 2 {
		t.Fatalf("Extracts = %v, want two entries", out.Extracts)
	}
	first, second := out.Extracts[0], out.Extracts[1]
	if first.Name != "heroName" || !first.Success || first.Value != "Luke" {
		t.Errorf("first extract = %+v, want heroName=Luke", first)
	}
	if second.Name != "missing" || second.Success {
		t.Errorf("second extract = %+v, want failure", second)
	}
}

func TestRunQueryExecuteOperationSelection(t *testing.T) {
	doc := "query A { hero { name } }\nquery B { hero { id } }"

	uc := NewRunQuery(&fakeTransport{resp: client.Response{}})

	if _, err := uc.Execute(context.Background(), RunParams{Query: doc}); !domain.IsKind(err, domain.KindInvalidQuery) {
		t.Fatalf("unnamed multi-operation error = %v, want kind %s", err, domain.KindInvalidQuery)
	}

	out, err := uc.Execute(context.Background(), RunParams{Query: doc, OperationName: "B"})
	if err != nil {
		t.Fatalf("Execute with operation name: %v", err)
	}
	if out.OperationName != "B" {
		t.Errorf("OperationName = %q, want B", out.OperationName)
	}

	if _, err := uc.Execute(context.Background(), RunParams{Query: doc, OperationName: "C"}); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("unknown operation error = %v, want kind %s", err, domain.KindNotFound)
	}
}

func TestRunQueryExecuteRejectsSubscription(t *testing.T) {
	uc := NewRunQuery(&fakeTransport{})
	_, err := uc.Execute(context.Background(), RunParams{
		Query: "subscription Watch { reviewAdded { stars } }",
	})
	if !domain.IsKind(err, domain.KindInvalidQuery) {
		t.Fatalf("subscription error = %v, want kind %s", err, domain.KindInvalidQuery)
	}
}

func TestRunQueryExecuteTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	uc := NewRunQuery(&fakeTransport{err: boom})

	_, err := uc.Execute(context.Background(), RunParams{Query: "{ hero { name } }"})
	if !errors.Is(err, boom) {
		t.Fatalf("Execute error = %v, want wrapped %v", err, boom)
	}
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("Execute error kind = %v, want %s", err, domain.KindExecution)
	}
}
