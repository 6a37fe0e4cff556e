package tui

import (
	"log/slog"

	"github.com/davidgraeff/graphql-client/internal/ports"
)

type Deps struct {
	// Resolver provides the schema shown in the browser.
	Resolver ports.SchemaResolver
	// Source is displayed in the header: an endpoint URL or file path.
	Source string

	Logger *slog.Logger
	Debug  bool
}
