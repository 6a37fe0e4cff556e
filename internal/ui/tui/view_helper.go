package tui

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vektah/gqlparser/v2/ast"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// browsableTypes are the schema types worth listing: user-defined types plus
// the root operation types, without the introspection machinery or the five
// builtin scalars.
func browsableTypes(schema *ast.Schema) []*ast.Definition {
	var out []*ast.Definition
	for name, def := range schema.Types {
		if strings.HasPrefix(name, "__") {
			continue
		}
		if isBuiltinScalarName(name) {
			continue
		}
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func isBuiltinScalarName(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

func kindLabel(kind ast.DefinitionKind) string {
	switch kind {
	case ast.Scalar:
		return "scalar"
	case ast.Object:
		return "object"
	case ast.Interface:
		return "interface"
	case ast.Union:
		return "union"
	case ast.Enum:
		return "enum"
	case ast.InputObject:
		return "input"
	}
	return strings.ToLower(string(kind))
}

func renderTypeDetail(def *ast.Definition) string {
	var b strings.Builder

	b.WriteString(kindLabel(def.Kind))
	b.WriteString(" ")
	b.WriteString(def.Name)
	if len(def.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(def.Interfaces, " & "))
	}
	b.WriteString("\n")

	if def.Description != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(def.Description))
		b.WriteString("\n")
	}

	switch def.Kind {
	case ast.Object, ast.Interface, ast.InputObject:
		b.WriteString("\nFields:\n")
		for _, f := range def.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			b.WriteString("  ")
			b.WriteString(f.Name)
			if len(f.Arguments) > 0 {
				b.WriteString("(")
				for i, a := range f.Arguments {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(a.Name)
					b.WriteString(": ")
					b.WriteString(a.Type.String())
				}
				b.WriteString(")")
			}
			b.WriteString(": ")
			b.WriteString(f.Type.String())
			if reason, ok := deprecation(f.Directives); ok {
				b.WriteString("  [deprecated")
				if reason != "" {
					b.WriteString(": ")
					b.WriteString(reason)
				}
				b.WriteString("]")
			}
			b.WriteString("\n")
		}

	case ast.Enum:
		b.WriteString("\nValues:\n")
		for _, v := range def.EnumValues {
			b.WriteString("  ")
			b.WriteString(v.Name)
			if reason, ok := deprecation(v.Directives); ok {
				b.WriteString("  [deprecated")
				if reason != "" {
					b.WriteString(": ")
					b.WriteString(reason)
				}
				b.WriteString("]")
			}
			b.WriteString("\n")
		}

	case ast.Union:
		b.WriteString("\nMembers:\n")
		for _, name := range def.Types {
			b.WriteString("  ")
			b.WriteString(name)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func deprecation(directives ast.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "", true
}
