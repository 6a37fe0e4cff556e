// Package scaffold creates the on-disk layout of a new project: config
// file, queries directory, and gitignore entries for generated state.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/davidgraeff/graphql-client/internal/app/template"
	"github.com/davidgraeff/graphql-client/internal/domain"
)

// Spec describes the project to scaffold.
type Spec struct {
	Root string
	// Endpoint seeds the config file; empty leaves a placeholder.
	Endpoint string
	// PackageName of generated code; empty uses the project default.
	PackageName string
	// OutputDirectory of generated code; empty uses the project default.
	OutputDirectory string
}

const configTemplate = `endpoint: {{ENDPOINT}}
output: {{OUTPUT}}
package: {{PACKAGE}}

# headers:
#   X-Api-Key: secret
# authorization: token
# schema: schema.graphql
# deprecation_strategy: warn
# scalars:
#   DateTime: time.Time
`

const exampleQuery = `query ServiceInfo {
  __typename
}
`

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

func (i *Initializer) Init(spec Spec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "queries"),
		filepath.Join(root, ".graphql-client", "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	defaults := domain.DefaultProject()
	vars := map[string]string{
		"ENDPOINT": spec.Endpoint,
		"PACKAGE":  spec.PackageName,
		"OUTPUT":   spec.OutputDirectory,
	}
	if vars["ENDPOINT"] == "" {
		vars["ENDPOINT"] = "http://localhost:8080/graphql"
	}
	if vars["PACKAGE"] == "" {
		vars["PACKAGE"] = defaults.PackageName
	}
	if vars["OUTPUT"] == "" {
		vars["OUTPUT"] = "generated"
	}

	cfg, err := template.RenderString(configTemplate, vars)
	if err != nil {
		return err
	}

	files := map[string]string{
		filepath.Join(root, ".graphql-client.yml"):             cfg,
		filepath.Join(root, "queries", "service_info.graphql"): exampleQuery,
	}
	for dst, content := range files {
		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				continue
			}
		}
		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func ensureGitignore(root string) error {
	const header = "# graphql-client"
	entries := []string{
		".graphql-client/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
