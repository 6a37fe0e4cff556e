package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

func (g *generator) emit(queryPath string) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated by graphql-client. DO NOT EDIT.\n")
	sb.WriteString("//\n")
	fmt.Fprintf(&sb, "// Source: %s\n", queryPath)
	fmt.Fprintf(&sb, "package %s\n\n", g.opts.PackageName)

	g.imports[ClientImportPath] = true
	sb.WriteString("import (\n")
	for _, imp := range sortedKeys(g.imports) {
		fmt.Fprintf(&sb, "\t%q\n", imp)
	}
	sb.WriteString(")\n\n")

	for _, block := range g.blocks {
		g.emitOperation(&sb, block)
	}

	for _, name := range sortedKeys(g.enums) {
		g.emitEnum(&sb, g.enums[name])
	}

	for _, name := range sortedKeys(g.inputs) {
		st, required := g.inputStruct(g.inputs[name])
		emitStruct(&sb, st)
		emitConstructor(&sb, st, required)
	}

	src := []byte(sb.String())
	if g.opts.NoFormatting {
		return src, nil
	}

	formatted, err := imports.Process("generated.go", src, nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "codegen.format",
			Kind: domain.KindExecution,
			Path: queryPath,
			Err:  err,
		}
	}
	return formatted, nil
}

func (g *generator) emitOperation(sb *strings.Builder, block opBlock) {
	fmt.Fprintf(sb, "// %sOperationName identifies the %s operation on the wire.\n", block.name, block.rawName)
	fmt.Fprintf(sb, "const %sOperationName = %q\n\n", block.name, block.rawName)

	fmt.Fprintf(sb, "// %sQuery is the query document sent to the server.\n", block.name)
	fmt.Fprintf(sb, "const %sQuery = %s\n\n", block.name, queryLiteral(block.query))

	if block.variables != nil {
		emitStruct(sb, *block.variables)
		fmt.Fprintf(sb, "// %sRequest builds the wire request for the %s operation.\n", block.name, block.rawName)
		fmt.Fprintf(sb, "func %sRequest(vars %sVariables) client.Request {\n", block.name, block.name)
		fmt.Fprintf(sb, "\treturn client.Request{\n")
		fmt.Fprintf(sb, "\t\tQuery:         %sQuery,\n", block.name)
		fmt.Fprintf(sb, "\t\tOperationName: %sOperationName,\n", block.name)
		fmt.Fprintf(sb, "\t\tVariables:     vars,\n")
		fmt.Fprintf(sb, "\t}\n}\n\n")
	} else {
		fmt.Fprintf(sb, "// %sRequest builds the wire request for the %s operation.\n", block.name, block.rawName)
		fmt.Fprintf(sb, "func %sRequest() client.Request {\n", block.name)
		fmt.Fprintf(sb, "\treturn client.Request{\n")
		fmt.Fprintf(sb, "\t\tQuery:         %sQuery,\n", block.name)
		fmt.Fprintf(sb, "\t\tOperationName: %sOperationName,\n", block.name)
		fmt.Fprintf(sb, "\t}\n}\n\n")
	}

	for _, st := range block.response {
		emitStruct(sb, st)
		emitUnmarshal(sb, st)
	}
}

func emitStruct(sb *strings.Builder, st goStruct) {
	if st.doc != "" {
		writeDoc(sb, st.doc, "")
	}
	fmt.Fprintf(sb, "type %s struct {\n", st.name)
	for _, f := range st.fields {
		if f.doc != "" {
			writeDoc(sb, f.doc, "\t")
		}
		fmt.Fprintf(sb, "\t%s %s `json:%q`\n", f.name, f.typ, f.jsonTag)
	}
	for _, v := range st.variants {
		fmt.Fprintf(sb, "\t%s *%s `json:\"-\"`\n", v.fieldName, v.goType)
	}
	sb.WriteString("}\n\n")
}

// emitUnmarshal writes the __typename-switching decoder for structs carrying
// fragment variants.
func emitUnmarshal(sb *strings.Builder, st goStruct) {
	if len(st.variants) == 0 {
		return
	}

	fmt.Fprintf(sb, "func (v *%s) UnmarshalJSON(data []byte) error {\n", st.name)
	fmt.Fprintf(sb, "\ttype plain %s\n", st.name)
	fmt.Fprintf(sb, "\tvar p plain\n")
	fmt.Fprintf(sb, "\tif err := json.Unmarshal(data, &p); err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(sb, "\t*v = %s(p)\n\n", st.name)
	fmt.Fprintf(sb, "\tswitch v.Typename {\n")
	for _, variant := range st.variants {
		fmt.Fprintf(sb, "\tcase %q:\n", variant.typeName)
		fmt.Fprintf(sb, "\t\tv.%s = new(%s)\n", variant.fieldName, variant.goType)
		fmt.Fprintf(sb, "\t\treturn json.Unmarshal(data, v.%s)\n", variant.fieldName)
	}
	fmt.Fprintf(sb, "\t}\n\treturn nil\n}\n\n")
}

func emitConstructor(sb *strings.Builder, st goStruct, required []goField) {
	fmt.Fprintf(sb, "// New%s builds a %s with all required fields set.\n", st.name, st.name)

	params := make([]string, 0, len(required))
	for _, f := range required {
		params = append(params, fmt.Sprintf("%s %s", paramName(f.name), f.typ))
	}
	fmt.Fprintf(sb, "func New%s(%s) %s {\n", st.name, strings.Join(params, ", "), st.name)
	fmt.Fprintf(sb, "\treturn %s{\n", st.name)
	for _, f := range required {
		fmt.Fprintf(sb, "\t\t%s: %s,\n", f.name, paramName(f.name))
	}
	fmt.Fprintf(sb, "\t}\n}\n\n")
}

// queryLiteral renders the query document as a Go string literal, preferring
// a raw string when the text allows it.
func queryLiteral(query string) string {
	if !strings.Contains(query, "`") {
		return "`" + query + "`"
	}
	return strconv.Quote(query)
}

func writeDoc(sb *strings.Builder, doc, indent string) {
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(sb, "%s// %s\n", indent, line)
	}
}
