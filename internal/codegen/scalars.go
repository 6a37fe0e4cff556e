package codegen

import "strings"

// builtinScalars maps the five built-in scalars. Int is int64 because GraphQL
// Int is a signed integer of unspecified width and servers routinely exceed
// 32 bits.
var builtinScalars = map[string]string{
	"Int":     "int64",
	"Float":   "float64",
	"String":  "string",
	"Boolean": "bool",
	"ID":      "string",
}

// scalarType resolves a scalar name to a Go type expression plus the import
// it needs, if any. Unmapped custom scalars stay raw JSON so no information
// is lost.
func (g *generator) scalarType(name string) (expr string, importPath string) {
	if t, ok := builtinScalars[name]; ok {
		return t, ""
	}
	if mapped, ok := g.opts.Scalars[name]; ok {
		return splitTypeImport(mapped)
	}
	return "json.RawMessage", "encoding/json"
}

// splitTypeImport decodes a mapped Go type. Supported shapes:
//
//	string                            -> builtin, no import
//	time.Time                         -> std import "time"
//	github.com/shopspring/decimal.Decimal -> module import, pkg-qualified
func splitTypeImport(mapped string) (expr string, importPath string) {
	dot := strings.LastIndex(mapped, ".")
	if dot < 0 {
		return mapped, ""
	}
	prefix := mapped[:dot]
	if !strings.Contains(prefix, "/") {
		return mapped, prefix
	}
	pkg := prefix[strings.LastIndex(prefix, "/")+1:]
	return pkg + "." + mapped[dot+1:], prefix
}
