package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/savedobjects/internal/config"
	domfind "github.com/kailas-cloud/savedobjects/internal/domain/find"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/filter"
	"github.com/kailas-cloud/savedobjects/internal/query"
)

// compileOptions holds flags for the compile command.
type compileOptions struct {
	*rootOptions
	types            []string
	namespaces       []string
	search           string
	searchFields     []string
	rootSearchFields []string
	operator         string
	reference        string
	workspaces       []string
	filter           string
}

func newCompileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the query document of a find request",
		Long: `Compile find options against the configured type registry and print
the resulting query document as indented JSON. No search engine is contacted.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			registry, err := cfg.Registry()
			if err != nil {
				return fmt.Errorf("build type registry: %w", err)
			}
			findOpts, err := opts.findOptions(cmd)
			if err != nil {
				return err
			}
			return runCompile(cmd.OutOrStdout(), query.NewCompiler(registry), findOpts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.types, "type", nil, "saved-object types to search (default: all)")
	f.StringSliceVar(&opts.namespaces, "namespace", nil, "namespaces to search")
	f.StringVar(&opts.search, "search", "", "search term; a trailing * makes it a prefix search")
	f.StringSliceVar(&opts.searchFields, "search-field", nil, "attribute fields to search, with optional ^boost")
	f.StringSliceVar(&opts.rootSearchFields, "root-search-field", nil, "root document fields to search")
	f.StringVar(&opts.operator, "operator", "", "default search operator: AND or OR")
	f.StringVar(&opts.reference, "reference", "", "required reference as type:id")
	f.StringSliceVar(&opts.workspaces, "workspace", nil, "workspaces the results must belong to")
	f.StringVar(&opts.filter, "filter", "", "structured filter as JSON")

	return cmd
}

// findOptions maps flags onto find options. Flags that were passed with an
// empty value become explicit empty lists.
func (o *compileOptions) findOptions(cmd *cobra.Command) (domfind.Options, error) {
	operator, err := domfind.ParseOperator(strings.ToUpper(o.operator))
	if err != nil {
		return domfind.Options{}, err
	}

	opts := domfind.Options{
		Types:                 o.types,
		Search:                o.search,
		SearchFields:          o.searchFields,
		RootSearchFields:      o.rootSearchFields,
		DefaultSearchOperator: operator,
	}
	if cmd.Flags().Changed("namespace") {
		opts.Namespaces = nonNil(o.namespaces)
	}
	if cmd.Flags().Changed("workspace") {
		opts.Workspaces = nonNil(o.workspaces)
	}
	if o.reference != "" {
		typ, id, ok := strings.Cut(o.reference, ":")
		if !ok || typ == "" || id == "" {
			return domfind.Options{}, fmt.Errorf("--reference must be type:id, got %q", o.reference)
		}
		opts.HasReference = &domfind.Reference{Type: typ, ID: id}
	}
	if o.filter != "" {
		expr, err := filter.Parse([]byte(o.filter))
		if err != nil {
			return domfind.Options{}, fmt.Errorf("--filter: %w", err)
		}
		opts.Filter = expr
	}
	return opts, nil
}

func runCompile(w io.Writer, compiler *query.Compiler, opts domfind.Options) error {
	doc, err := compiler.Compile(&opts)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
