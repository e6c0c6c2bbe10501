package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytdlx/internal/deps"
	"ytdlx/internal/extractor"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that external binaries are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := ctx.binaries()
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := locator.Check(deps.Standard())
			missing := 0
			for _, status := range statuses {
				fmt.Fprintln(out, dependencyLine(status, colorize))
				if !status.Available && !status.Optional {
					missing++
				}
			}

			if status := statuses[0]; status.Available {
				runner, err := ctx.runner()
				if err != nil {
					return err
				}
				if version, err := runner.Version(cmd.Context()); err != nil {
					fmt.Fprintln(out, renderStatusLine("Version", statusWarn, err.Error(), colorize))
				} else {
					fmt.Fprintln(out, renderStatusLine("Version", statusInfo, extractor.Binary+" "+version, colorize))
				}
			}

			if missing > 0 {
				return fmt.Errorf("%d required dependency(ies) missing", missing)
			}
			return nil
		},
	}
}
