package ports

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaResolver yields a validated schema for code generation, regardless of
// whether it came from an SDL file, an introspection JSON file, or a server.
type SchemaResolver interface {
	ResolveSchema(ctx context.Context) (*ast.Schema, error)
}
