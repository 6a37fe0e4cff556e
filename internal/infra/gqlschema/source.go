// Package gqlschema resolves a schema for code generation from any of the
// supported sources: an SDL file, an introspection JSON file, or a live
// endpoint.
package gqlschema

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/infra/introspection"
	"github.com/davidgraeff/graphql-client/internal/ports"
)

// FileSource loads a schema from disk. The extension decides the format:
// .json is treated as an introspection result, anything else as SDL.
type FileSource struct {
	Path string
}

var _ ports.SchemaResolver = FileSource{}

func (s FileSource) ResolveSchema(_ context.Context) (*ast.Schema, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gqlschema.read",
			Kind: domain.KindNotFound,
			Path: s.Path,
			Err:  err,
		}
	}

	if strings.EqualFold(filepath.Ext(s.Path), ".json") {
		intro, err := introspection.ParseJSON(b)
		if err != nil {
			return nil, err
		}
		return introspection.Validate(intro)
	}

	schema, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: s.Path, Input: string(b)})
	if gqlErr != nil {
		return nil, &domain.OpError{
			Op:   "gqlschema.parse_sdl",
			Kind: domain.KindInvalidSchema,
			Path: s.Path,
			Err:  gqlErr,
		}
	}
	return schema, nil
}

// EndpointSource introspects a live server and validates the result.
type EndpointSource struct {
	Fetcher ports.SchemaFetcher
}

var _ ports.SchemaResolver = EndpointSource{}

func (s EndpointSource) ResolveSchema(ctx context.Context) (*ast.Schema, error) {
	intro, err := s.Fetcher.FetchSchema(ctx)
	if err != nil {
		return nil, err
	}
	return introspection.Validate(intro)
}
