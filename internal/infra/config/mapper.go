package config

import (
	"fmt"
	"time"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// MapProject validates a DTO and folds it over the defaults.
func MapProject(path string, yp YAMLProject) (domain.Project, error) {
	p := domain.DefaultProject()

	p.Endpoint = yp.Endpoint
	p.Authorization = yp.Authorization
	for k, v := range yp.Headers {
		p.Headers[k] = v
	}

	if yp.Timeout != "" {
		d, err := time.ParseDuration(yp.Timeout)
		if err != nil {
			return domain.Project{}, invalidField(path, "timeout", err.Error())
		}
		if d < 0 {
			return domain.Project{}, invalidField(path, "timeout", "must not be negative")
		}
		p.Timeout = d
	}

	p.SchemaPath = yp.Schema
	if yp.Output != "" {
		p.OutputDirectory = yp.Output
	}
	if yp.Package != "" {
		p.PackageName = yp.Package
	}

	p.SelectedOperation = yp.SelectedOperation

	strategy, err := domain.ParseDeprecationStrategy(yp.DeprecationStrategy)
	if err != nil {
		return domain.Project{}, invalidField(path, "deprecation_strategy",
			fmt.Sprintf("%q is not one of allow, warn, deny", yp.DeprecationStrategy))
	}
	p.Deprecation = strategy

	for name, goType := range yp.Scalars {
		if name == "" || goType == "" {
			return domain.Project{}, invalidField(path, "scalars", "scalar name and Go type must be non-empty")
		}
		p.Scalars[name] = goType
	}

	p.NoFormatting = yp.NoFormatting
	return p, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
