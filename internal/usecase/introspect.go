// Package usecase composes ports into the operations the CLI exposes.
package usecase

import (
	"context"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/ports"
)

// IntrospectSchema fetches the schema of a live endpoint.
type IntrospectSchema struct {
	fetcher ports.SchemaFetcher
}

func NewIntrospectSchema(f ports.SchemaFetcher) *IntrospectSchema {
	return &IntrospectSchema{fetcher: f}
}

func (uc *IntrospectSchema) Execute(ctx context.Context) (*domain.Schema, error) {
	return uc.fetcher.FetchSchema(ctx)
}
