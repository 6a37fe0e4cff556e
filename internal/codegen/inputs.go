package codegen

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// variablesStruct expands an operation's variable definitions. A nil result
// means the operation takes no variables.
func (g *generator) variablesStruct(opName string, op *ast.OperationDefinition, queryPath string) (*goStruct, error) {
	if len(op.VariableDefinitions) == 0 {
		return nil, nil
	}

	st := &goStruct{name: opName + "Variables"}
	for _, vd := range op.VariableDefinitions {
		inner, err := g.inputLeaf(vd.Type.Name(), queryPath)
		if err != nil {
			return nil, err
		}

		tag := vd.Variable
		if !vd.Type.NonNull {
			// Absent optionals must not be serialized at all; null and
			// missing are different things to a GraphQL server.
			tag += ",omitempty"
		}

		st.fields = append(st.fields, goField{
			name:    exportedName(vd.Variable),
			typ:     wrapType(vd.Type, inner),
			jsonTag: tag,
		})
	}
	return st, nil
}

// inputLeaf resolves a named type in input position, registering enums and
// input objects (transitively) as it goes.
func (g *generator) inputLeaf(named string, queryPath string) (string, error) {
	def := g.schema.Types[named]
	if def == nil {
		return "", &domain.OpError{
			Op:   "codegen.inputs",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("unknown type %s", named),
		}
	}

	switch def.Kind {
	case ast.Scalar:
		expr, importPath := g.scalarType(named)
		if importPath != "" {
			g.imports[importPath] = true
		}
		return expr, nil
	case ast.Enum:
		g.enums[named] = def
		return g.goTypeName(named), nil
	case ast.InputObject:
		if err := g.registerInput(def, queryPath); err != nil {
			return "", err
		}
		return g.goTypeName(named), nil
	}
	return "", &domain.OpError{
		Op:   "codegen.inputs",
		Kind: domain.KindInvalidQuery,
		Path: queryPath,
		Err:  fmt.Errorf("type %s (%s) is not usable in input position", named, def.Kind),
	}
}

func (g *generator) registerInput(def *ast.Definition, queryPath string) error {
	if _, done := g.inputs[def.Name]; done {
		return nil
	}
	g.inputs[def.Name] = def

	for _, f := range def.Fields {
		if _, err := g.inputLeaf(f.Type.Name(), queryPath); err != nil {
			return err
		}
	}
	return nil
}

// inputStruct renders one registered input object. Field order is sorted for
// stable output. Required fields (non-null without default) are values and
// constructor parameters; everything else is a pointer that serializes only
// when set. A required field whose input type reaches itself without any
// slice or pointer in between must itself be a pointer, or the struct would
// have infinite size.
func (g *generator) inputStruct(def *ast.Definition) (goStruct, []goField) {
	fields := make([]*ast.FieldDefinition, len(def.Fields))
	copy(fields, def.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	st := goStruct{name: g.goTypeName(def.Name)}
	if def.Description != "" {
		st.doc = def.Description
	}

	var required []goField
	for _, f := range fields {
		inner := g.inputFieldType(f.Type.Name())
		typ := wrapType(f.Type, inner)

		isRequired := f.Type.NonNull && f.DefaultValue == nil
		tag := f.Name
		if !isRequired {
			tag += ",omitempty"
			if f.Type.Elem == nil && f.Type.NonNull {
				// Non-null with a schema default: optional on the wire but
				// wrapType produced a value type. Make it optional here too.
				typ = "*" + typ
			}
		}

		if isRequired && f.Type.Elem == nil && g.selfRecursive(f.Type.Name(), map[string]bool{}) {
			typ = "*" + typ
		}

		field := goField{
			name:    exportedName(f.Name),
			typ:     typ,
			jsonTag: tag,
		}
		st.fields = append(st.fields, field)
		if isRequired {
			required = append(required, field)
		}
	}
	return st, required
}

func (g *generator) inputFieldType(named string) string {
	def := g.schema.Types[named]
	if def == nil {
		return "json.RawMessage"
	}
	switch def.Kind {
	case ast.Scalar:
		expr, _ := g.scalarType(named)
		return expr
	default:
		return g.goTypeName(named)
	}
}

// selfRecursive reports whether the named input type contains itself without
// passing through a list or an optional field.
func (g *generator) selfRecursive(name string, seen map[string]bool) bool {
	def := g.schema.Types[name]
	if def == nil || def.Kind != ast.InputObject {
		return false
	}
	return g.containsWithoutIndirection(def, name, seen)
}

func (g *generator) containsWithoutIndirection(def *ast.Definition, target string, seen map[string]bool) bool {
	if seen[def.Name] {
		return false
	}
	seen[def.Name] = true

	for _, f := range def.Fields {
		if f.Type.Elem != nil || !f.Type.NonNull {
			continue // indirected through a slice or pointer
		}
		named := f.Type.Name()
		if named == target {
			return true
		}
		inner := g.schema.Types[named]
		if inner != nil && inner.Kind == ast.InputObject &&
			g.containsWithoutIndirection(inner, target, seen) {
			return true
		}
	}
	return false
}
