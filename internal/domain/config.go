package domain

import "time"

// DeprecationStrategy controls how generated code treats deprecated schema fields.
type DeprecationStrategy string

const (
	// DeprecationAllow generates deprecated fields silently.
	DeprecationAllow DeprecationStrategy = "allow"
	// DeprecationWarn generates deprecated fields with a Deprecated: doc comment.
	DeprecationWarn DeprecationStrategy = "warn"
	// DeprecationDeny fails generation when a query selects a deprecated field.
	DeprecationDeny DeprecationStrategy = "deny"
)

// ParseDeprecationStrategy validates a strategy string from config or flags.
// The empty string maps to the default (warn).
func ParseDeprecationStrategy(s string) (DeprecationStrategy, error) {
	switch DeprecationStrategy(s) {
	case DeprecationAllow, DeprecationWarn, DeprecationDeny:
		return DeprecationStrategy(s), nil
	case "":
		return DeprecationWarn, nil
	}
	return "", &OpError{
		Op:   "config.deprecation_strategy",
		Kind: KindInvalidConfig,
		Err:  ErrInvalidConfig,
	}
}

// Project is the resolved .graphql-client.yml configuration.
type Project struct {
	// Endpoint is the GraphQL HTTP endpoint used for introspection and run.
	Endpoint string
	// Headers are sent on every request to the endpoint.
	Headers map[string]string
	// Authorization, when set, is sent as a Bearer token.
	Authorization string
	// Timeout bounds each request cycle.
	Timeout time.Duration

	// SchemaPath points at a local schema (.json introspection or SDL).
	SchemaPath string
	// OutputDirectory receives generated files.
	OutputDirectory string
	// PackageName is the Go package of generated files.
	PackageName string

	// SelectedOperation restricts generation to one named operation.
	SelectedOperation string
	// Deprecation is the strategy applied during generation.
	Deprecation DeprecationStrategy
	// Scalars maps custom scalar names to Go types, e.g. DateTime -> time.Time.
	Scalars map[string]string
	// NoFormatting skips the goimports pass on generated code.
	NoFormatting bool
}

// DefaultProject provides sane defaults when no config file is present.
func DefaultProject() Project {
	return Project{
		Headers:         map[string]string{},
		Timeout:         30 * time.Second,
		OutputDirectory: ".",
		PackageName:     "graphql",
		Deprecation:     DeprecationWarn,
		Scalars:         map[string]string{},
	}
}
