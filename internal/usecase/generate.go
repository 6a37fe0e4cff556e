package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/davidgraeff/graphql-client/internal/codegen"
	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/ports"
)

// GenerateCode turns a query document plus a schema into a generated Go file.
type GenerateCode struct {
	schemas ports.SchemaResolver
}

func NewGenerateCode(schemas ports.SchemaResolver) *GenerateCode {
	return &GenerateCode{schemas: schemas}
}

type GenerateParams struct {
	QueryPath       string
	OutputDirectory string
	Options         codegen.Options
}

type GenerateOutcome struct {
	OutputPath string
	Operations []string
	Warnings   []string
}

func (uc *GenerateCode) Execute(ctx context.Context, p GenerateParams) (GenerateOutcome, error) {
	query, err := os.ReadFile(p.QueryPath)
	if err != nil {
		return GenerateOutcome{}, &domain.OpError{
			Op:   "generate.read_query",
			Kind: domain.KindNotFound,
			Path: p.QueryPath,
			Err:  err,
		}
	}

	schema, err := uc.schemas.ResolveSchema(ctx)
	if err != nil {
		return GenerateOutcome{}, err
	}

	result, err := codegen.Generate(schema, p.QueryPath, string(query), p.Options)
	if err != nil {
		return GenerateOutcome{}, err
	}

	outPath := filepath.Join(p.OutputDirectory, generatedFileName(p.QueryPath))
	if err := os.MkdirAll(p.OutputDirectory, 0o755); err != nil {
		return GenerateOutcome{}, &domain.OpError{
			Op:   "generate.write",
			Kind: domain.KindExecution,
			Path: p.OutputDirectory,
			Err:  err,
		}
	}
	if err := os.WriteFile(outPath, result.Source, 0o644); err != nil {
		return GenerateOutcome{}, &domain.OpError{
			Op:   "generate.write",
			Kind: domain.KindExecution,
			Path: outPath,
			Err:  err,
		}
	}

	return GenerateOutcome{
		OutputPath: outPath,
		Operations: result.Operations,
		Warnings:   result.Warnings,
	}, nil
}

// generatedFileName derives the output file from the query file:
// HeroQuery.graphql becomes hero_query.go.
func generatedFileName(queryPath string) string {
	base := filepath.Base(queryPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strcase.ToSnake(base) + ".go"
}
