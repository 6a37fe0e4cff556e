// Package config loads the project configuration. Precedence, lowest to
// highest: built-in defaults, .graphql-client.yml, environment variables
// (a .env file is honored), command-line flags (applied by the CLI layer).
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// DefaultFileNames are probed in order when no explicit --config is given.
var DefaultFileNames = []string{".graphql-client.yml", ".graphql-client.yaml", "graphql-client.yml"}

type envOverrides struct {
	Endpoint      string        `env:"GRAPHQL_CLIENT_ENDPOINT"`
	Authorization string        `env:"GRAPHQL_CLIENT_AUTHORIZATION"`
	Timeout       time.Duration `env:"GRAPHQL_CLIENT_TIMEOUT"`
}

// Load resolves the project configuration. An empty path probes
// DefaultFileNames; a missing default file is not an error, a missing
// explicit file is.
func Load(path string) (domain.Project, error) {
	if path == "" {
		path = probeDefault()
	}

	p := domain.DefaultProject()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.Project{}, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindNotFound,
				Path: path,
				Err:  err,
			}
		}

		var dto YAMLProject
		if err := yaml.Unmarshal(b, &dto); err != nil {
			return domain.Project{}, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}

		p, err = MapProject(path, dto)
		if err != nil {
			return domain.Project{}, err
		}
	}

	if err := applyEnv(&p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func applyEnv(p *domain.Project) error {
	// .env is a convenience for tokens; absence is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.OpError{
			Op:   "config.dotenv",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return &domain.OpError{
			Op:   "config.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if o.Endpoint != "" {
		p.Endpoint = o.Endpoint
	}
	if o.Authorization != "" {
		p.Authorization = o.Authorization
	}
	if o.Timeout > 0 {
		p.Timeout = o.Timeout
	}
	return nil
}

func probeDefault() string {
	for _, name := range DefaultFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
