package cli

import (
	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/infra/logger"
	"github.com/davidgraeff/graphql-client/internal/ui/tui"
)

func schemaCmd(configPath *string, debug *bool) *cobra.Command {
	c := &cobra.Command{
		Use:   "schema",
		Short: "Inspect GraphQL schemas",
	}

	c.AddCommand(schemaBrowseCmd(configPath, debug))
	return c
}

func schemaBrowseCmd(configPath *string, debug *bool) *cobra.Command {
	var schemaPath string
	var endpoint string
	var headers []string
	var authorization string

	c := &cobra.Command{
		Use:   "browse",
		Short: "Browse a schema interactively",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			proj, _, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			if endpoint != "" {
				proj.Endpoint = endpoint
			}
			if err := applyEndpointFlags(&proj, headers, authorization); err != nil {
				return err
			}

			resolver, source, err := schemaResolver(proj, schemaPath)
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Resolver: resolver,
				Source:   source,
				Logger:   logger.L(),
				Debug:    *debug,
			})
		},
	}

	c.Flags().StringVar(&schemaPath, "schema-path", "", "schema file (.graphql SDL or .json introspection); default: introspect the endpoint")
	c.Flags().StringVar(&endpoint, "endpoint", "", "GraphQL endpoint (default: from config)")
	c.Flags().StringArrayVar(&headers, "header", nil, "additional header, \"Name: value\" (repeatable)")
	c.Flags().StringVar(&authorization, "authorization", "", "bearer token for the endpoint")
	return c
}
