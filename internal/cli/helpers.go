package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/infra/config"
	"github.com/davidgraeff/graphql-client/internal/infra/configfinder"
	"github.com/davidgraeff/graphql-client/internal/infra/gqlschema"
	"github.com/davidgraeff/graphql-client/internal/infra/httpclient"
	"github.com/davidgraeff/graphql-client/internal/infra/introspection"
	"github.com/davidgraeff/graphql-client/internal/ports"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

// loadProject resolves the effective configuration. With no explicit path the
// nearest config file in parent directories wins; without one, defaults plus
// environment variables apply.
func loadProject(explicit string) (domain.Project, string, error) {
	path := explicit
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, ferr := configfinder.NewFinder().Find(wd); ferr == nil {
				path = found
			}
		}
	}

	proj, err := config.Load(path)
	return proj, path, err
}

// projectRoot is where logs and run artifacts live: next to the config file
// when one exists, the working directory otherwise.
func projectRoot(configPath string) string {
	if configPath != "" {
		return filepath.Dir(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// parseHeaders turns repeated "Name: value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, found := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Name: value\")", h)
		}
		out[name] = value
	}
	return out, nil
}

// parseScalars turns repeated "Name=go.Type" flags into a scalar map.
func parseScalars(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, s := range raw {
		name, goType, found := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		goType = strings.TrimSpace(goType)
		if !found || name == "" || goType == "" {
			return nil, fmt.Errorf("invalid scalar mapping %q (expected \"Name=go.Type\")", s)
		}
		out[name] = goType
	}
	return out, nil
}

// parseExtracts turns repeated "name=$.json.path" flags into a rule map.
func parseExtracts(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, e := range raw {
		name, expr, found := strings.Cut(e, "=")
		name = strings.TrimSpace(name)
		expr = strings.TrimSpace(expr)
		if !found || name == "" || expr == "" {
			return nil, fmt.Errorf("invalid extract %q (expected \"name=$.json.path\")", e)
		}
		out[name] = expr
	}
	return out, nil
}

// applyEndpointFlags folds endpoint-related flag values into the project.
func applyEndpointFlags(proj *domain.Project, headers []string, authorization string) error {
	hs, err := parseHeaders(headers)
	if err != nil {
		return err
	}
	if proj.Headers == nil {
		proj.Headers = map[string]string{}
	}
	for k, v := range hs {
		proj.Headers[k] = v
	}
	if authorization != "" {
		proj.Authorization = authorization
	}
	return nil
}

func newTransport(proj domain.Project) *client.Client {
	opts := []client.Option{
		client.WithHTTPClient(httpclient.ForProject(proj.Timeout)),
	}
	for k, v := range proj.Headers {
		opts = append(opts, client.WithHeader(k, v))
	}
	if proj.Authorization != "" {
		opts = append(opts, client.WithBearerToken(proj.Authorization))
	}
	return client.New(proj.Endpoint, opts...)
}

// schemaResolver picks the schema source: an explicit file beats the
// configured file, which beats live introspection.
func schemaResolver(proj domain.Project, schemaPath string) (ports.SchemaResolver, string, error) {
	if schemaPath == "" {
		schemaPath = proj.SchemaPath
	}
	if schemaPath != "" {
		return gqlschema.FileSource{Path: schemaPath}, schemaPath, nil
	}
	if proj.Endpoint == "" {
		return nil, "", errors.New("no schema source: pass --schema-path or configure an endpoint")
	}
	return gqlschema.EndpointSource{
		Fetcher: introspection.NewFetcher(newTransport(proj)),
	}, proj.Endpoint, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
