package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/infra/introspection"
	"github.com/davidgraeff/graphql-client/internal/infra/logger"
	"github.com/davidgraeff/graphql-client/internal/usecase"
)

func introspectSchemaCmd(configPath *string) *cobra.Command {
	var headers []string
	var authorization string
	var output string
	var format string

	c := &cobra.Command{
		Use:   "introspect-schema [endpoint]",
		Short: "Fetch a schema from a server via the introspection query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, _, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				proj.Endpoint = args[0]
			}
			if proj.Endpoint == "" {
				return errors.New("no endpoint: pass one as an argument or configure it in .graphql-client.yml")
			}
			if err := applyEndpointFlags(&proj, headers, authorization); err != nil {
				return err
			}

			f, err := resolveSchemaFormat(format, output)
			if err != nil {
				return err
			}

			logger.L().Info("introspect.start", "endpoint", proj.Endpoint, "format", f)

			uc := usecase.NewIntrospectSchema(introspection.NewFetcher(newTransport(proj)))
			schema, err := uc.Execute(cmd.Context())
			if err != nil {
				logger.L().Error("introspect.failed", "endpoint", proj.Endpoint, "err", err.Error())
				return err
			}

			var out []byte
			switch f {
			case "json":
				out, err = introspection.EncodeJSON(schema)
				if err != nil {
					return err
				}
			case "sdl":
				// Validation catches incomplete introspection results before
				// they are rendered.
				if _, err := introspection.Validate(schema); err != nil {
					return err
				}
				out = []byte(introspection.SDL(schema))
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}

			logger.L().Info("introspect.done", "output", output, "bytes", len(out))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d types)\n", output, len(schema.Types))
			return nil
		},
	}

	c.Flags().StringArrayVar(&headers, "header", nil, "additional header, \"Name: value\" (repeatable)")
	c.Flags().StringVar(&authorization, "authorization", "", "bearer token for the endpoint")
	c.Flags().StringVarP(&output, "output", "o", "", "write the schema to this file instead of stdout")
	c.Flags().StringVar(&format, "format", "", "output format: json|sdl (default: inferred from --output, else json)")
	return c
}

// resolveSchemaFormat applies the explicit flag or infers the format from the
// output file extension.
func resolveSchemaFormat(flag, output string) (string, error) {
	switch flag {
	case "json", "sdl":
		return flag, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q (expected json|sdl)", flag)
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".graphql", ".gql", ".sdl":
		return "sdl", nil
	}
	return "json", nil
}
