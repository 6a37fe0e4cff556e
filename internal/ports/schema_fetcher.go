package ports

import (
	"context"

	"github.com/davidgraeff/graphql-client/internal/domain"
)

// SchemaFetcher retrieves an introspection schema from a live endpoint.
type SchemaFetcher interface {
	FetchSchema(ctx context.Context) (*domain.Schema, error)
}
