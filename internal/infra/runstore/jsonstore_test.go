package runstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveRun_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	store := NewJSONStore(tmp, WithMasking(false))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	run := Artifact{
		QueryPath:     "queries/hero.graphql",
		OperationName: "HeroQuery",
		Endpoint:      "http://x/graphql",
		StartedAt:     start,
		DurationMS:    42,
		Data:          json.RawMessage(`{"hero":{"name":"Luke"}}`),
		Extracted:     map[string]any{"heroName": "Luke"},
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	wantFile := filepath.Join(tmp, ".graphql-client", "runs", "20260203T101112Z_heroquery.json")
	if _, err := os.Stat(wantFile); err != nil {
		t.Fatalf("expected file at %s, stat err=%v (id=%s)", wantFile, err, id)
	}

	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var got Artifact
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if got.OperationName != "HeroQuery" || got.DurationMS != 42 {
		t.Fatalf("artifact round-trip mismatch: %+v", got)
	}
	if got.Extracted["heroName"] != "Luke" {
		t.Fatalf("expected unmasked value, got %v", got.Extracted["heroName"])
	}
}

func TestSaveRun_FallsBackToQueryFileName(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, WithNow(func() time.Time {
		return time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	}))

	id, err := store.SaveRun(Artifact{QueryPath: "queries/Create Review.graphql"})
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if !strings.HasSuffix(id, "_create-review") {
		t.Fatalf("expected slug from query file name, got id=%s", id)
	}
}

func TestSaveRun_MasksSensitiveExtracts(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp)

	id, err := store.SaveRun(Artifact{
		QueryPath: "login.graphql",
		StartedAt: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Extracted: map[string]any{
			"authToken": "abc123",
			"userName":  "ada",
		},
	})
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".graphql-client", "runs", id+".json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var got Artifact
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Extracted["authToken"] != maskValue {
		t.Fatalf("expected masked token, got %v", got.Extracted["authToken"])
	}
	if got.Extracted["userName"] != "ada" {
		t.Fatalf("expected plain value preserved, got %v", got.Extracted["userName"])
	}
}

func TestSaveRun_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, WithIndex(true))

	if _, err := store.SaveRun(Artifact{
		QueryPath:     "hero.graphql",
		OperationName: "Hero",
		StartedAt:     time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	f, err := os.Open(filepath.Join(tmp, ".graphql-client", "runs", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatal("expected one index line")
	}
	var entry map[string]any
	if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
		t.Fatalf("index line is not JSON: %v", err)
	}
	if entry["operation"] != "Hero" {
		t.Fatalf("expected operation in index, got %v", entry)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Demo API":       "demo-api",
		"  Hero_Query  ": "hero-query",
		"___":            "",
		"Query2":         "query2",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
