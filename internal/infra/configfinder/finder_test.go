package configfinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

func TestFind_FindsConfigFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "project")
	nested := filepath.Join(root, "internal", "queries")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfgPath := filepath.Join(root, ".graphql-client.yml")
	if err := os.WriteFile(cfgPath, []byte("endpoint: http://localhost/graphql\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f := NewFinder()
	got, err := f.Find(nested)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if got != cfgPath {
		t.Fatalf("expected %s, got %s", cfgPath, got)
	}
}

func TestFind_PrefersNearestConfig(t *testing.T) {
	tmp := t.TempDir()
	inner := filepath.Join(tmp, "inner")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, ".graphql-client.yml"), []byte("endpoint: outer\n"), 0o644); err != nil {
		t.Fatalf("write outer: %v", err)
	}
	innerPath := filepath.Join(inner, ".graphql-client.yaml")
	if err := os.WriteFile(innerPath, []byte("endpoint: inner\n"), 0o644); err != nil {
		t.Fatalf("write inner: %v", err)
	}

	f := NewFinder()
	got, err := f.Find(inner)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if got != innerPath {
		t.Fatalf("expected nearest config %s, got %s", innerPath, got)
	}
}

func TestFind_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := NewFinder()
	_, err := f.Find(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFind_EmptyStartDir(t *testing.T) {
	f := NewFinder()
	if _, err := f.Find(""); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}
