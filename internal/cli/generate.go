package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/codegen"
	"github.com/davidgraeff/graphql-client/internal/domain"
	"github.com/davidgraeff/graphql-client/internal/infra/logger"
	"github.com/davidgraeff/graphql-client/internal/usecase"
)

func generateCmd(configPath *string) *cobra.Command {
	var schemaPath string
	var outputDirectory string
	var packageName string
	var selectedOperation string
	var deprecationStrategy string
	var scalars []string
	var noFormatting bool
	var headers []string
	var authorization string

	c := &cobra.Command{
		Use:   "generate <query_path>",
		Short: "Generate typed client code for the operations in a query document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryPath := args[0]

			proj, _, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			if err := applyEndpointFlags(&proj, headers, authorization); err != nil {
				return err
			}
			if outputDirectory != "" {
				proj.OutputDirectory = outputDirectory
			}
			if packageName != "" {
				proj.PackageName = packageName
			}
			if selectedOperation != "" {
				proj.SelectedOperation = selectedOperation
			}
			if deprecationStrategy != "" {
				strategy, err := domain.ParseDeprecationStrategy(deprecationStrategy)
				if err != nil {
					return fmt.Errorf("unsupported deprecation strategy %q (expected allow|warn|deny)", deprecationStrategy)
				}
				proj.Deprecation = strategy
			}
			flagScalars, err := parseScalars(scalars)
			if err != nil {
				return err
			}
			if proj.Scalars == nil {
				proj.Scalars = map[string]string{}
			}
			for k, v := range flagScalars {
				proj.Scalars[k] = v
			}
			if noFormatting {
				proj.NoFormatting = true
			}

			resolver, source, err := schemaResolver(proj, schemaPath)
			if err != nil {
				return err
			}

			logger.L().Info("generate.start", "query", queryPath, "schema", source)

			uc := usecase.NewGenerateCode(resolver)
			out, err := uc.Execute(cmd.Context(), usecase.GenerateParams{
				QueryPath:       queryPath,
				OutputDirectory: proj.OutputDirectory,
				Options: codegen.Options{
					PackageName:       proj.PackageName,
					SelectedOperation: proj.SelectedOperation,
					Deprecation:       proj.Deprecation,
					Scalars:           proj.Scalars,
					NoFormatting:      proj.NoFormatting,
				},
			})
			if err != nil {
				logger.L().Error("generate.failed", "query", queryPath, "err", err.Error())
				return err
			}

			for _, w := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			logger.L().Info("generate.done", "output", out.OutputPath, "operations", len(out.Operations))
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (%d operation(s))\n", out.OutputPath, len(out.Operations))
			return nil
		},
	}

	c.Flags().StringVar(&schemaPath, "schema-path", "", "schema file (.graphql SDL or .json introspection); default: introspect the endpoint")
	c.Flags().StringVarP(&outputDirectory, "output-directory", "o", "", "directory for the generated file")
	c.Flags().StringVarP(&packageName, "package", "p", "", "package name of the generated file")
	c.Flags().StringVar(&selectedOperation, "selected-operation", "", "generate only this operation from the document")
	c.Flags().StringVar(&deprecationStrategy, "deprecation-strategy", "", "allow|warn|deny for deprecated fields")
	c.Flags().StringArrayVar(&scalars, "scalar", nil, "custom scalar mapping, \"Name=go.Type\" (repeatable)")
	c.Flags().BoolVar(&noFormatting, "no-formatting", false, "skip the goimports pass on generated code")
	c.Flags().StringArrayVar(&headers, "header", nil, "additional header for introspection, \"Name: value\" (repeatable)")
	c.Flags().StringVar(&authorization, "authorization", "", "bearer token for introspection")
	return c
}
