package codegen

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// Result is one generated file plus what went into it.
type Result struct {
	Source     []byte
	Operations []string
	Warnings   []string
}

type goField struct {
	name    string
	typ     string
	jsonTag string // raw tag value, e.g. `episode,omitempty`; "-" for variant fields
	doc     string // optional one-line doc, e.g. a Deprecated: notice
}

type variant struct {
	typeName  string // GraphQL concrete type name matched against __typename
	fieldName string
	goType    string
}

type goStruct struct {
	name     string
	doc      string
	fields   []goField
	variants []variant
}

type opBlock struct {
	name      string // exported operation identifier
	rawName   string // operation name as written in the document
	query     string
	variables *goStruct
	response  []goStruct
}

type generator struct {
	schema *ast.Schema
	opts   Options

	blocks    []opBlock
	enums     map[string]*ast.Definition
	inputs    map[string]*ast.Definition
	imports   map[string]bool
	warnings  []string
	usedNames map[string]bool
	typeNames map[string]string
}

// Generate parses, validates and expands a query document against schema.
func Generate(schema *ast.Schema, queryPath, query string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	doc, err := parser.ParseQuery(&ast.Source{Name: queryPath, Input: query})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "codegen.parse",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  err,
		}
	}
	if errs := validator.Validate(schema, doc); len(errs) > 0 {
		return nil, &domain.OpError{
			Op:   "codegen.validate",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  errs,
		}
	}

	ops, err := selectOperations(doc, opts.SelectedOperation, queryPath)
	if err != nil {
		return nil, err
	}

	g := &generator{
		schema:    schema,
		opts:      opts,
		enums:     map[string]*ast.Definition{},
		inputs:    map[string]*ast.Definition{},
		imports:   map[string]bool{},
		usedNames: map[string]bool{},
		typeNames: map[string]string{},
	}

	for _, op := range ops {
		if err := g.genOperation(op, query, queryPath); err != nil {
			return nil, err
		}
	}

	src, err := g.emit(queryPath)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return &Result{Source: src, Operations: names, Warnings: g.warnings}, nil
}

func selectOperations(doc *ast.QueryDocument, selected, queryPath string) ([]*ast.OperationDefinition, error) {
	var ops []*ast.OperationDefinition
	for _, op := range doc.Operations {
		if op.Name == "" {
			return nil, &domain.OpError{
				Op:   "codegen.operations",
				Kind: domain.KindInvalidQuery,
				Path: queryPath,
				Err:  fmt.Errorf("anonymous operations cannot be generated; name every operation"),
			}
		}
		if selected != "" && op.Name != selected {
			continue
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		if selected != "" {
			return nil, &domain.OpError{
				Op:   "codegen.operations",
				Kind: domain.KindNotFound,
				Path: queryPath,
				Err:  fmt.Errorf("operation %q not found in document", selected),
			}
		}
		return nil, &domain.OpError{
			Op:   "codegen.operations",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("document contains no operations"),
		}
	}
	return ops, nil
}

func (g *generator) genOperation(op *ast.OperationDefinition, query, queryPath string) error {
	opName := g.uniqueName(exportedName(op.Name))

	block := opBlock{
		name:    opName,
		rawName: op.Name,
		query:   query,
	}

	vars, err := g.variablesStruct(opName, op, queryPath)
	if err != nil {
		return err
	}
	block.variables = vars

	root, err := g.rootDefinition(op, queryPath)
	if err != nil {
		return err
	}

	var structs []goStruct
	if _, err := g.buildStruct(opName+"Response", opName, root, op.SelectionSet, &structs, queryPath); err != nil {
		return err
	}
	block.response = structs

	g.blocks = append(g.blocks, block)
	return nil
}

func (g *generator) rootDefinition(op *ast.OperationDefinition, queryPath string) (*ast.Definition, error) {
	var root *ast.Definition
	switch op.Operation {
	case ast.Query:
		root = g.schema.Query
	case ast.Mutation:
		root = g.schema.Mutation
	case ast.Subscription:
		root = g.schema.Subscription
	}
	if root == nil {
		return nil, &domain.OpError{
			Op:   "codegen.operations",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("schema does not define a root %s type", op.Operation),
		}
	}
	return root, nil
}

// buildStruct expands one selection set into a struct definition, appending it
// (and all nested structs, depth-first) to out. The returned name accounts
// for collision suffixes. childPrefix seeds the names of nested structs; the
// empty string uses the struct's own name, which the operation root overrides
// so children read HeroHero rather than HeroResponseHero.
func (g *generator) buildStruct(base, childPrefix string, parent *ast.Definition, selections ast.SelectionSet, out *[]goStruct, queryPath string) (string, error) {
	name := g.uniqueName(base)
	if childPrefix == "" {
		childPrefix = name
	}
	st := goStruct{name: name}
	sawTypename := false

	var walk func(sels ast.SelectionSet) error
	walk = func(sels ast.SelectionSet) error {
		for _, sel := range sels {
			switch s := sel.(type) {
			case *ast.Field:
				if s.Name == "__typename" {
					sawTypename = true
					continue
				}
				if s.Definition == nil {
					return &domain.OpError{
						Op:   "codegen.selection",
						Kind: domain.KindInvalidQuery,
						Path: queryPath,
						Err:  fmt.Errorf("meta field %s is not supported in generated code", s.Name),
					}
				}

				doc, err := g.checkDeprecation(parent.Name, s, queryPath)
				if err != nil {
					return err
				}

				field, err := g.responseField(childPrefix, s, out, queryPath)
				if err != nil {
					return err
				}
				field.doc = doc
				st.fields = append(st.fields, field)

			case *ast.FragmentSpread:
				fd := s.Definition
				if fd == nil {
					return &domain.OpError{
						Op:   "codegen.selection",
						Kind: domain.KindInvalidQuery,
						Path: queryPath,
						Err:  fmt.Errorf("unresolved fragment %s", s.Name),
					}
				}
				if g.mergeable(parent, fd.TypeCondition) {
					if err := walk(fd.SelectionSet); err != nil {
						return err
					}
					continue
				}
				if err := g.addVariant(&st, childPrefix, fd.TypeCondition, fd.Definition, fd.SelectionSet, out, queryPath); err != nil {
					return err
				}

			case *ast.InlineFragment:
				if s.TypeCondition == "" || g.mergeable(parent, s.TypeCondition) {
					if err := walk(s.SelectionSet); err != nil {
						return err
					}
					continue
				}
				cond := g.schema.Types[s.TypeCondition]
				if err := g.addVariant(&st, childPrefix, s.TypeCondition, cond, s.SelectionSet, out, queryPath); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(selections); err != nil {
		return "", err
	}

	if len(st.variants) > 0 || sawTypename {
		// Variants are discriminated on __typename, so the field is always
		// materialized once fragments are present.
		st.fields = append([]goField{{
			name:    "Typename",
			typ:     "string",
			jsonTag: "__typename",
		}}, st.fields...)
	}
	if len(st.variants) > 0 {
		g.imports["encoding/json"] = true
	}

	*out = append(*out, st)
	return name, nil
}

// mergeable reports whether a fragment with the given type condition applies
// unconditionally to the parent type, so its fields can be inlined.
func (g *generator) mergeable(parent *ast.Definition, condition string) bool {
	if condition == parent.Name {
		return true
	}
	cond := g.schema.Types[condition]
	if cond == nil {
		return false
	}
	// A fragment on an interface the parent object implements always matches.
	if cond.Kind == ast.Interface {
		for _, impl := range parent.Interfaces {
			if impl == condition {
				return true
			}
		}
	}
	return false
}

func (g *generator) addVariant(st *goStruct, parentName, condition string, cond *ast.Definition, sels ast.SelectionSet, out *[]goStruct, queryPath string) error {
	if cond == nil {
		return &domain.OpError{
			Op:   "codegen.selection",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("unknown type condition %s", condition),
		}
	}

	typeName, err := g.buildStruct(parentName+exportedName(condition), "", cond, sels, out, queryPath)
	if err != nil {
		return err
	}
	st.variants = append(st.variants, variant{
		typeName:  condition,
		fieldName: "On" + exportedName(condition),
		goType:    typeName,
	})
	return nil
}

func (g *generator) responseField(parentName string, s *ast.Field, out *[]goStruct, queryPath string) (goField, error) {
	alias := s.Alias
	if alias == "" {
		alias = s.Name
	}

	var inner string
	if len(s.SelectionSet) == 0 {
		leaf, err := g.leafType(s.Definition.Type.Name(), queryPath)
		if err != nil {
			return goField{}, err
		}
		inner = leaf
	} else {
		named := g.schema.Types[s.Definition.Type.Name()]
		if named == nil {
			return goField{}, &domain.OpError{
				Op:   "codegen.selection",
				Kind: domain.KindInvalidQuery,
				Path: queryPath,
				Err:  fmt.Errorf("unknown type %s", s.Definition.Type.Name()),
			}
		}
		child, err := g.buildStruct(parentName+exportedName(alias), "", named, s.SelectionSet, out, queryPath)
		if err != nil {
			return goField{}, err
		}
		inner = child
	}

	return goField{
		name:    exportedName(alias),
		typ:     wrapType(s.Definition.Type, inner),
		jsonTag: alias,
	}, nil
}

// leafType maps a scalar or enum leaf to its Go type, registering enums on
// first use.
func (g *generator) leafType(named string, queryPath string) (string, error) {
	def := g.schema.Types[named]
	if def != nil && def.Kind == ast.Enum {
		g.enums[named] = def
		return g.goTypeName(named), nil
	}
	if def == nil || def.Kind != ast.Scalar {
		return "", &domain.OpError{
			Op:   "codegen.selection",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("type %s cannot be a leaf selection", named),
		}
	}

	expr, importPath := g.scalarType(named)
	if importPath != "" {
		g.imports[importPath] = true
	}
	return expr, nil
}

func (g *generator) checkDeprecation(parentType string, s *ast.Field, queryPath string) (doc string, err error) {
	dep := s.Definition.Directives.ForName("deprecated")
	if dep == nil {
		return "", nil
	}

	reason := "no longer supported"
	if arg := dep.Arguments.ForName("reason"); arg != nil && arg.Value != nil && arg.Value.Raw != "" {
		reason = arg.Value.Raw
	}

	switch g.opts.Deprecation {
	case domain.DeprecationDeny:
		return "", &domain.OpError{
			Op:   "codegen.deprecation",
			Kind: domain.KindInvalidQuery,
			Path: queryPath,
			Err:  fmt.Errorf("field %s.%s is deprecated: %s", parentType, s.Name, reason),
		}
	case domain.DeprecationWarn:
		g.warnings = append(g.warnings, fmt.Sprintf("field %s.%s is deprecated: %s", parentType, s.Name, reason))
		return "Deprecated: " + reason, nil
	}
	return "", nil
}

// wrapType maps GraphQL list/null wrapping onto Go. Lists become slices
// either way since a nil slice already expresses absence; nullable leaves
// and objects become pointers.
func wrapType(t *ast.Type, inner string) string {
	if t.Elem != nil {
		return "[]" + wrapType(t.Elem, inner)
	}
	if t.NonNull {
		return inner
	}
	return "*" + inner
}

func (g *generator) uniqueName(base string) string {
	name := base
	for i := 2; g.usedNames[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	g.usedNames[name] = true
	return name
}

// goTypeName resolves a schema enum or input object to its emitted Go name,
// claiming it in the collision registry on first use so schema types and
// generated operation structs never produce duplicate declarations.
func (g *generator) goTypeName(named string) string {
	if n, ok := g.typeNames[named]; ok {
		return n
	}
	n := g.uniqueName(exportedName(named))
	g.typeNames[named] = n
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
