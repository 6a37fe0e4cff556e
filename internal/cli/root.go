package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var configPath string
	var logCleanup func() error

	cmd := &cobra.Command{
		Use:          "graphql-client",
		Short:        "Introspect GraphQL schemas, generate typed clients, and run queries",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			_, foundConfig, _ := loadProject(configPath)

			cleanup, _ := logger.Setup(logger.Config{
				Root:  projectRoot(foundConfig),
				Debug: debug,
			})
			logCleanup = cleanup
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logCleanup != nil {
				_ = logCleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .graphql-client/logs/graphql-client.log")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .graphql-client.yml (default: nearest in parent directories)")

	cmd.AddCommand(
		introspectSchemaCmd(&configPath),
		generateCmd(&configPath),
		runCmd(&configPath),
		schemaCmd(&configPath, &debug),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
