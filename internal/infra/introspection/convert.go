package introspection

import (
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// Document converts an introspection result into a gqlparser schema document.
// Meta (__-prefixed) types are always skipped. When includeBuiltins is false
// the five spec scalars and the spec directives are skipped too, which is
// what a human-facing SDL dump wants; validation wants them kept because
// ValidateSchemaDocument does not inject a prelude.
func Document(schema *domain.Schema, includeBuiltins bool) *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}

	root := &ast.SchemaDefinition{}
	if schema.QueryType != nil && schema.QueryType.Name != "" {
		root.OperationTypes = append(root.OperationTypes, &ast.OperationTypeDefinition{
			Operation: ast.Query,
			Type:      schema.QueryType.Name,
		})
	}
	if schema.MutationType != nil && schema.MutationType.Name != "" {
		root.OperationTypes = append(root.OperationTypes, &ast.OperationTypeDefinition{
			Operation: ast.Mutation,
			Type:      schema.MutationType.Name,
		})
	}
	if schema.SubscriptionType != nil && schema.SubscriptionType.Name != "" {
		root.OperationTypes = append(root.OperationTypes, &ast.OperationTypeDefinition{
			Operation: ast.Subscription,
			Type:      schema.SubscriptionType.Name,
		})
	}
	if len(root.OperationTypes) > 0 {
		doc.Schema = append(doc.Schema, root)
	}

	seenScalars := map[string]bool{}
	for _, t := range schema.Types {
		if t.Name == "" || domain.IsIntrospectionType(t.Name) {
			continue
		}
		if domain.IsBuiltinScalar(t.Name) {
			seenScalars[t.Name] = true
			if !includeBuiltins {
				continue
			}
		}
		doc.Definitions = append(doc.Definitions, definition(t))
	}

	seenDirectives := map[string]bool{}
	for _, d := range schema.Directives {
		if !includeBuiltins && isSpecDirective(d.Name) {
			continue
		}
		seenDirectives[d.Name] = true
		doc.Directives = append(doc.Directives, directiveDefinition(d))
	}

	if includeBuiltins {
		// Servers may omit unused built-ins; validation still needs them once
		// queries mention String variables or @skip.
		for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
			if !seenScalars[name] {
				doc.Definitions = append(doc.Definitions, &ast.Definition{
					Kind: ast.Scalar,
					Name: name,
				})
			}
		}
		for _, d := range specDirectives() {
			if !seenDirectives[d.Name] {
				doc.Directives = append(doc.Directives, d)
			}
		}
	}

	return doc
}

// Validate turns an introspection result into a usable *ast.Schema.
func Validate(schema *domain.Schema) (*ast.Schema, error) {
	out, err := validator.ValidateSchemaDocument(Document(schema, true))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "introspection.validate",
			Kind: domain.KindInvalidSchema,
			Err:  err,
		}
	}
	return out, nil
}

// SDL renders an introspection result as schema definition language.
func SDL(schema *domain.Schema) string {
	var sb strings.Builder
	formatter.NewFormatter(&sb).FormatSchemaDocument(Document(schema, false))
	return sb.String()
}

func definition(t domain.Type) *ast.Definition {
	def := &ast.Definition{
		Description: t.Description,
		Name:        t.Name,
	}

	switch t.Kind {
	case domain.KindScalar:
		def.Kind = ast.Scalar
	case domain.KindObject:
		def.Kind = ast.Object
		def.Fields = fieldList(t.Fields)
		for _, i := range t.Interfaces {
			def.Interfaces = append(def.Interfaces, i.NamedType())
		}
	case domain.KindInterface:
		def.Kind = ast.Interface
		def.Fields = fieldList(t.Fields)
		for _, i := range t.Interfaces {
			def.Interfaces = append(def.Interfaces, i.NamedType())
		}
	case domain.KindUnion:
		def.Kind = ast.Union
		for _, m := range t.PossibleTypes {
			def.Types = append(def.Types, m.NamedType())
		}
	case domain.KindEnum:
		def.Kind = ast.Enum
		for _, v := range t.EnumValues {
			ev := &ast.EnumValueDefinition{
				Description: v.Description,
				Name:        v.Name,
			}
			if v.IsDeprecated {
				ev.Directives = append(ev.Directives, deprecatedDirective(v.DeprecationReason))
			}
			def.EnumValues = append(def.EnumValues, ev)
		}
	case domain.KindInputObject:
		def.Kind = ast.InputObject
		for _, f := range t.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Description:  f.Description,
				Name:         f.Name,
				Type:         astType(f.Type),
				DefaultValue: literal(f.DefaultValue),
			})
		}
	}

	return def
}

func fieldList(fields []domain.Field) ast.FieldList {
	out := make(ast.FieldList, 0, len(fields))
	for _, f := range fields {
		fd := &ast.FieldDefinition{
			Description: f.Description,
			Name:        f.Name,
			Type:        astType(f.Type),
		}
		for _, a := range f.Args {
			fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{
				Description:  a.Description,
				Name:         a.Name,
				Type:         astType(a.Type),
				DefaultValue: literal(a.DefaultValue),
			})
		}
		if f.IsDeprecated {
			fd.Directives = append(fd.Directives, deprecatedDirective(f.DeprecationReason))
		}
		out = append(out, fd)
	}
	return out
}

func astType(r domain.TypeRef) *ast.Type {
	switch {
	case r.IsNonNull():
		t := astType(r.Unwrap())
		t.NonNull = true
		return t
	case r.Kind == domain.KindList:
		return ast.ListType(astType(r.Unwrap()), nil)
	default:
		return ast.NamedType(r.Name, nil)
	}
}

func directiveDefinition(d domain.Directive) *ast.DirectiveDefinition {
	def := &ast.DirectiveDefinition{
		Description: d.Description,
		Name:        d.Name,
	}
	for _, loc := range d.Locations {
		def.Locations = append(def.Locations, ast.DirectiveLocation(loc))
	}
	for _, a := range d.Args {
		def.Arguments = append(def.Arguments, &ast.ArgumentDefinition{
			Description:  a.Description,
			Name:         a.Name,
			Type:         astType(a.Type),
			DefaultValue: literal(a.DefaultValue),
		})
	}
	return def
}

func deprecatedDirective(reason string) *ast.Directive {
	d := &ast.Directive{Name: "deprecated"}
	if reason != "" {
		d.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Raw: reason, Kind: ast.StringValue},
		}}
	}
	return d
}

// literal best-effort classifies an introspection defaultValue, which arrives
// as a GraphQL literal in string form. List and object literals are dropped.
func literal(raw *string) *ast.Value {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	switch {
	case s == "":
		return nil
	case s == "null":
		return &ast.Value{Raw: "null", Kind: ast.NullValue}
	case s == "true" || s == "false":
		return &ast.Value{Raw: s, Kind: ast.BooleanValue}
	case strings.HasPrefix(s, `"`):
		if unquoted, err := strconv.Unquote(s); err == nil {
			return &ast.Value{Raw: unquoted, Kind: ast.StringValue}
		}
		return nil
	case strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{"):
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &ast.Value{Raw: s, Kind: ast.IntValue}
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return &ast.Value{Raw: s, Kind: ast.FloatValue}
	}
	return &ast.Value{Raw: s, Kind: ast.EnumValue}
}

func isSpecDirective(name string) bool {
	switch name {
	case "skip", "include", "deprecated", "specifiedBy":
		return true
	}
	return false
}

func specDirectives() []*ast.DirectiveDefinition {
	ifArg := func() ast.ArgumentDefinitionList {
		return ast.ArgumentDefinitionList{{
			Name: "if",
			Type: ast.NonNullNamedType("Boolean", nil),
		}}
	}
	return []*ast.DirectiveDefinition{
		{
			Name:      "skip",
			Arguments: ifArg(),
			Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
		},
		{
			Name:      "include",
			Arguments: ifArg(),
			Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
		},
		{
			Name: "deprecated",
			Arguments: ast.ArgumentDefinitionList{{
				Name:         "reason",
				Type:         ast.NamedType("String", nil),
				DefaultValue: &ast.Value{Raw: "No longer supported", Kind: ast.StringValue},
			}},
			Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition, ast.LocationEnumValue},
		},
	}
}
