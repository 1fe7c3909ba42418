package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/savedobjects/internal/config"
)

// rootOptions are flags shared by every command.
type rootOptions struct {
	env string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running it without a subcommand serves HTTP.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "savedobjects",
		Short: "Saved-objects find API over an OpenSearch index",
		Long: `Serves GET /api/saved_objects/_find: find requests are scoped to
namespaces, types and workspaces, compiled into a bool query and run
against the saved-objects index.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment: loads config/<env>.yaml")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newCompileCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}
