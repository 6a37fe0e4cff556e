// Package codegen turns a validated schema plus a query document into
// type-safe Go source: per-operation query constants, variables structs,
// response structs mirroring the selection sets, and the enum and
// input-object types they reference.
package codegen

import "github.com/davidgraeff/graphql-client/internal/domain"

// ClientImportPath is the runtime package generated request builders use.
const ClientImportPath = "github.com/davidgraeff/graphql-client/pkg/client"

// Options configures a code generation run.
type Options struct {
	// PackageName of the emitted file.
	PackageName string
	// SelectedOperation restricts generation to one named operation.
	// Empty generates all operations in the document.
	SelectedOperation string
	// Deprecation decides what selecting a deprecated field does.
	Deprecation domain.DeprecationStrategy
	// Scalars maps custom scalar names to Go types. Unmapped custom
	// scalars become json.RawMessage.
	Scalars map[string]string
	// NoFormatting skips the goimports pass.
	NoFormatting bool
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = "graphql"
	}
	if o.Deprecation == "" {
		o.Deprecation = domain.DeprecationWarn
	}
	return o
}
