package ports

import (
	"context"

	"github.com/davidgraeff/graphql-client/pkg/client"
)

// GraphQLTransport executes a query body and returns the raw response
// envelope. *client.Client satisfies it.
type GraphQLTransport interface {
	Raw(ctx context.Context, req client.Request) (client.Response, error)
}
