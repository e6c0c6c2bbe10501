package main

import (
	"github.com/spf13/cobra"

	"ytdlx/internal/resolver"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var opts resolver.Options
	var envelope bool

	cmd := &cobra.Command{
		Use:   "resolve <url|id|search terms...>",
		Short: "Resolve a query and print the classified formats as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Verbose {
				ctx.raiseVerbosity()
			}
			res, err := ctx.resolver(cmd.Context())
			if err != nil {
				return err
			}
			result, err := res.Resolve(cmd.Context(), joinArgs(args), opts)
			if err != nil {
				return err
			}
			if envelope {
				return writeJSON(cmd, result)
			}
			return writeJSON(cmd, result.Output)
		},
	}

	cmd.Flags().BoolVar(&opts.UseTor, "tor", false, "Route the extractor through the configured Tor proxy")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Forward extractor debug output to the log")
	cmd.Flags().BoolVar(&envelope, "envelope", false, "Wrap the output with request id, query and resolved URL")
	return cmd
}
