package codegen

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// exportedName converts a GraphQL name into an exported Go identifier.
func exportedName(name string) string {
	out := strcase.ToCamel(sanitize(name))
	if out == "" {
		return "X"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "X" + out
	}
	return out
}

// paramName converts a GraphQL name into an unexported, keyword-safe
// identifier for constructor parameters.
func paramName(name string) string {
	out := strcase.ToLowerCamel(sanitize(name))
	if out == "" {
		return "v"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "v" + out
	}
	if goKeywords[out] {
		out += "_"
	}
	return out
}

func sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
