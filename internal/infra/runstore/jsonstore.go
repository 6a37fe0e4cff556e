// Package runstore persists executed-query artifacts as JSON files under
// .graphql-client/runs/.
package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

const defaultRunsDir = ".graphql-client/runs"
const maskValue = "********"

// Artifact is the saved record of one executed operation.
type Artifact struct {
	QueryPath     string          `json:"query_path"`
	OperationName string          `json:"operation_name,omitempty"`
	Endpoint      string          `json:"endpoint"`
	StartedAt     time.Time       `json:"started_at"`
	DurationMS    int64           `json:"duration_ms"`
	Data          json.RawMessage `json:"data,omitempty"`
	Errors        []string        `json:"errors,omitempty"`
	Extracted     map[string]any  `json:"extracted,omitempty"`
}

type JSONStore struct {
	rootDir        string
	runsDirName    string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithMasking hides token-like extracted values in saved artifacts.
func WithMasking(enabled bool) Option {
	return func(s *JSONStore) { s.maskingEnabled = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, opts ...Option) *JSONStore {
	s := &JSONStore{
		rootDir:        root,
		runsDirName:    defaultRunsDir,
		maskingEnabled: true,
		writeIndex:     false,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JSONStore) SaveRun(run Artifact) (string, error) {
	dir := filepath.Join(s.rootDir, filepath.FromSlash(s.runsDirName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	namePart := run.OperationName
	if strings.TrimSpace(namePart) == "" {
		namePart = strings.TrimSuffix(filepath.Base(run.QueryPath), filepath.Ext(run.QueryPath))
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "run"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	if s.maskingEnabled {
		toSave.Extracted = maskExtracted(toSave.Extracted)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, run Artifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Query     string    `json:"query"`
		Operation string    `json:"operation"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Query:     run.QueryPath,
		Operation: run.OperationName,
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// maskExtracted returns a masked copy (does NOT mutate the input).
func maskExtracted(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			out[k] = maskValue
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(k)
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "api-key") ||
		strings.Contains(kk, "apikey")
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
