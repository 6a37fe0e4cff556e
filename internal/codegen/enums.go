package codegen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// emitEnum renders a string-typed enum with one constant per value. The raw
// schema spelling stays in the constant value so round trips are lossless.
func (g *generator) emitEnum(sb *strings.Builder, def *ast.Definition) {
	goName := g.goTypeName(def.Name)

	if def.Description != "" {
		writeDoc(sb, def.Description, "")
	} else {
		fmt.Fprintf(sb, "// %s is the %s enum from the schema.\n", goName, def.Name)
	}
	fmt.Fprintf(sb, "type %s string\n\n", goName)

	fmt.Fprintf(sb, "const (\n")
	for _, v := range def.EnumValues {
		if dep := v.Directives.ForName("deprecated"); dep != nil && g.opts.Deprecation != domain.DeprecationAllow {
			reason := "no longer supported"
			if arg := dep.Arguments.ForName("reason"); arg != nil && arg.Value != nil && arg.Value.Raw != "" {
				reason = arg.Value.Raw
			}
			fmt.Fprintf(sb, "\t// Deprecated: %s\n", reason)
		}
		fmt.Fprintf(sb, "\t%s%s %s = %q\n", goName, exportedName(strings.ToLower(v.Name)), goName, v.Name)
	}
	// Fallback for values the schema gained after generation.
	fmt.Fprintf(sb, "\t%sUnknown %s = \"\"\n", goName, goName)
	fmt.Fprintf(sb, ")\n\n")
}
