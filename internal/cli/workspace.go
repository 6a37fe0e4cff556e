package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davidgraeff/graphql-client/internal/buildinfo"
	"github.com/davidgraeff/graphql-client/internal/infra/scaffold"
)

func initCmd() *cobra.Command {
	var path string
	var force bool
	var endpoint string
	var packageName string
	var output string

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a project: config file, queries directory, gitignore entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			if !force && fileExists(filepath.Join(root, ".graphql-client.yml")) {
				return fmt.Errorf("%s already has a config file (use --force to overwrite)", root)
			}

			initializer := scaffold.NewInitializer()
			if err := initializer.Init(scaffold.Spec{
				Root:            root,
				Endpoint:        endpoint,
				PackageName:     packageName,
				OutputDirectory: output,
			}, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project in %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "project directory (default: current directory)")
	c.Flags().BoolVar(&force, "force", false, "overwrite existing scaffold files")
	c.Flags().StringVar(&endpoint, "endpoint", "", "endpoint to seed the config file with")
	c.Flags().StringVar(&packageName, "package", "", "package name to seed the config file with")
	c.Flags().StringVar(&output, "output", "", "output directory to seed the config file with")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
