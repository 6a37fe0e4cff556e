package introspection

import (
	"context"

	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/ports"
	"github.com/davidgraeff/graphql-client/pkg/client"
)

// Fetcher runs the introspection query against an endpoint.
type Fetcher struct {
	transport *client.Client
}

var _ ports.SchemaFetcher = (*Fetcher)(nil)

// NewFetcher builds a Fetcher on top of a configured transport.
func NewFetcher(transport *client.Client) *Fetcher {
	return &Fetcher{transport: transport}
}

// FetchSchema executes the introspection query and decodes the __schema payload.
func (f *Fetcher) FetchSchema(ctx context.Context) (*domain.Schema, error) {
	var out struct {
		Schema *domain.Schema `json:"__schema"`
	}

	err := f.transport.Do(ctx, client.Request{
		Query:         Query,
		OperationName: OperationName,
	}, &out)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "introspection.fetch",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if out.Schema == nil {
		return nil, &domain.OpError{
			Op:   "introspection.fetch",
			Kind: domain.KindInvalidSchema,
			Err:  domain.ErrInvalidSchema,
		}
	}
	return out.Schema, nil
}
