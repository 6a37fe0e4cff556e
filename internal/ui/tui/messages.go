package tui

import "github.com/vektah/gqlparser/v2/ast"

type schemaLoadedMsg struct {
	schema *ast.Schema
	err    error
}
