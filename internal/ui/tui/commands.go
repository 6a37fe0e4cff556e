package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 30 * time.Second

func cmdLoadSchema(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Resolver == nil {
			return schemaLoadedMsg{err: errors.New("Resolver is nil")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		schema, err := deps.Resolver.ResolveSchema(ctx)
		if err != nil {
			if deps.Logger != nil {
				deps.Logger.Error("tui.schema_load_failed", "source", deps.Source, "err", err.Error())
			}
			return schemaLoadedMsg{err: err}
		}

		if deps.Logger != nil {
			deps.Logger.Info("tui.schema_loaded", "source", deps.Source, "types", len(schema.Types))
		}
		return schemaLoadedMsg{schema: schema}
	}
}
