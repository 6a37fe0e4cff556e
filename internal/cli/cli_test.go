package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/davidgraeff/graphql-client/internal/usecase"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

// --- parseHeaders ---

func TestParseHeaders(t *testing.T) {
	got, err := parseHeaders([]string{"X-Api-Key: secret", "Accept:application/json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["X-Api-Key"] != "secret" {
		t.Errorf("expected X-Api-Key=secret, got %q", got["X-Api-Key"])
	}
	if got["Accept"] != "application/json" {
		t.Errorf("expected Accept parsed without space, got %q", got["Accept"])
	}
}

func TestParseHeaders_Invalid(t *testing.T) {
	for _, bad := range []string{"no-colon", ": empty-name"} {
		if _, err := parseHeaders([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

// --- parseScalars ---

func TestParseScalars(t *testing.T) {
	got, err := parseScalars([]string{"DateTime=time.Time", "UUID=github.com/google/uuid.UUID"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["DateTime"] != "time.Time" {
		t.Errorf("expected DateTime=time.Time, got %q", got["DateTime"])
	}
	if got["UUID"] != "github.com/google/uuid.UUID" {
		t.Errorf("expected full import path preserved, got %q", got["UUID"])
	}
}

func TestParseScalars_Invalid(t *testing.T) {
	for _, bad := range []string{"DateTime", "=time.Time", "DateTime="} {
		if _, err := parseScalars([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

// --- parseExtracts ---

func TestParseExtracts(t *testing.T) {
	got, err := parseExtracts([]string{"heroName=$.hero.name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["heroName"] != "$.hero.name" {
		t.Errorf("expected rule preserved, got %q", got["heroName"])
	}

	if _, err := parseExtracts([]string{"no-equals"}); err == nil {
		t.Error("expected error for rule without =")
	}
}

// --- resolveVariables ---

func TestResolveVariables_Inline(t *testing.T) {
	got, err := resolveVariables(`{"id":"1"}`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"id":"1"}` {
		t.Errorf("expected raw JSON preserved, got %s", got)
	}
}

func TestResolveVariables_File(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "vars.json")
	if err := os.WriteFile(p, []byte(`{"id":"2"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := resolveVariables("", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"id":"2"}` {
		t.Errorf("expected file content, got %s", got)
	}
}

func TestResolveVariables_Errors(t *testing.T) {
	if _, err := resolveVariables(`{`, ""); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := resolveVariables(`{}`, "also-set.json"); err == nil {
		t.Error("expected error when both flag and file are set")
	}
	got, err := resolveVariables("", "")
	if err != nil || got != nil {
		t.Errorf("expected nil for empty input, got %s err=%v", got, err)
	}
}

// --- resolveSchemaFormat ---

func TestResolveSchemaFormat(t *testing.T) {
	cases := []struct {
		flag   string
		output string
		want   string
	}{
		{"json", "schema.graphql", "json"},
		{"sdl", "", "sdl"},
		{"", "schema.graphql", "sdl"},
		{"", "schema.gql", "sdl"},
		{"", "schema.json", "json"},
		{"", "", "json"},
	}
	for _, c := range cases {
		got, err := resolveSchemaFormat(c.flag, c.output)
		if err != nil {
			t.Errorf("resolveSchemaFormat(%q, %q) error: %v", c.flag, c.output, err)
			continue
		}
		if got != c.want {
			t.Errorf("resolveSchemaFormat(%q, %q) = %q, want %q", c.flag, c.output, got, c.want)
		}
	}

	if _, err := resolveSchemaFormat("xml", ""); err == nil {
		t.Error("expected error for unknown format")
	}
}

// --- fileExists ---

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
	if fileExists(tmp) {
		t.Error("expected fileExists=false for a directory")
	}
}

// --- loadProject ---

func TestLoadProject_FindsNearestConfig(t *testing.T) {
	tmp := t.TempDir()
	nested := filepath.Join(tmp, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, ".graphql-client.yml"), []byte("endpoint: http://x/graphql\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	proj, path, err := loadProject("")
	if err != nil {
		t.Fatalf("loadProject error: %v", err)
	}
	if proj.Endpoint != "http://x/graphql" {
		t.Errorf("expected endpoint from config, got %q", proj.Endpoint)
	}
	if filepath.Base(path) != ".graphql-client.yml" {
		t.Errorf("expected config file path, got %q", path)
	}
}

// --- runArtifact ---

func TestRunArtifact(t *testing.T) {
	started := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	out := usecase.RunOutcome{
		OperationName: "Hero",
		Response: client.Response{
			Data:   json.RawMessage(`{"hero":null}`),
			Errors: client.Errors{{Message: "boom", Path: []any{"hero"}}},
		},
		Extracts: []usecase.ExtractResult{
			{Name: "name", Success: true, Value: "Luke"},
			{Name: "missing", Success: false, Message: "unknown key"},
		},
	}

	a := runArtifact("hero.graphql", "http://x/graphql", started, 1500*time.Millisecond, out)

	if a.OperationName != "Hero" || a.DurationMS != 1500 {
		t.Fatalf("unexpected artifact: %+v", a)
	}
	if len(a.Errors) != 1 || !strings.Contains(a.Errors[0], "boom") {
		t.Fatalf("expected formatted error, got %v", a.Errors)
	}
	if a.Extracted["name"] != "Luke" {
		t.Errorf("expected successful extract saved, got %v", a.Extracted)
	}
	if _, ok := a.Extracted["missing"]; ok {
		t.Error("expected failed extract omitted from artifact")
	}
}

// --- printRun ---

func TestPrintRun_JSON_ValidOutput(t *testing.T) {
	out := usecase.RunOutcome{
		OperationName: "Hero",
		Response: client.Response{
			Data: json.RawMessage(`{"hero":{"name":"Luke"}}`),
		},
	}
	var buf bytes.Buffer
	if err := printRun(&buf, out, time.Second, "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["data"] == nil {
		t.Error("expected 'data' key in JSON output")
	}
}

func TestPrintRun_Pretty_ContainsDataAndExtracts(t *testing.T) {
	out := usecase.RunOutcome{
		OperationName: "Hero",
		Response: client.Response{
			Data:   json.RawMessage(`{"hero":{"name":"Luke"}}`),
			Errors: client.Errors{{Message: "partial failure"}},
		},
		Extracts: []usecase.ExtractResult{
			{Name: "heroName", Success: true, Value: "Luke"},
		},
	}
	var buf bytes.Buffer
	if err := printRun(&buf, out, 250*time.Millisecond, "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := buf.String()
	for _, want := range []string{"Operation: Hero", `"Luke"`, "partial failure", "heroName"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in pretty output, got:\n%s", want, s)
		}
	}
}

func TestPrintRun_EmptyFormat_IsPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, usecase.RunOutcome{}, 0, ""); err != nil {
		t.Fatalf("empty format should behave like pretty, got error: %v", err)
	}
}

func TestPrintRun_UnknownFormat_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	err := printRun(&buf, usecase.RunOutcome{}, 0, "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected error to mention format, got: %v", err)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[strings.Fields(sub.Use)[0]] = true
	}
	for _, expected := range []string{"introspect-schema", "generate", "run", "schema", "init", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestIntrospectSchemaCmd_Flags(t *testing.T) {
	var cfg string
	cmd := introspectSchemaCmd(&cfg)
	for _, flag := range []string{"header", "authorization", "output", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on introspect-schema command", flag)
		}
	}
}

func TestGenerateCmd_Flags(t *testing.T) {
	var cfg string
	cmd := generateCmd(&cfg)
	for _, flag := range []string{
		"schema-path", "output-directory", "package", "selected-operation",
		"deprecation-strategy", "scalar", "no-formatting",
	} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on generate command", flag)
		}
	}
}

func TestRunCmd_Flags(t *testing.T) {
	var cfg string
	cmd := runCmd(&cfg)
	for _, flag := range []string{"endpoint", "operation", "variables", "variables-file", "extract", "format", "no-save"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on run command", flag)
		}
	}
}

func TestSchemaCmd_HasBrowseSubcommand(t *testing.T) {
	var cfg string
	var debug bool
	cmd := schemaCmd(&cfg, &debug)
	found := false
	for _, sub := range cmd.Commands() {
		if sub.Use == "browse" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'browse' subcommand under schema")
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	for _, flag := range []string{"path", "force", "endpoint", "package", "output"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on init command", flag)
		}
	}
}

func TestVersionCmd_PrintsBuildInfo(t *testing.T) {
	cmd := versionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	if !strings.Contains(buf.String(), "graphql-client") {
		t.Errorf("expected binary name in version output, got %q", buf.String())
	}
}
