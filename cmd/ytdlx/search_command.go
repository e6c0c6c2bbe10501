package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytdlx/internal/extractor"
	"ytdlx/internal/resolver"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Search for videos without resolving formats",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			res, err := ctx.resolver(cmd.Context())
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Extractor.SearchLimit
			}
			results, err := res.Search(cmd.Context(), joinArgs(args), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSearchResults(results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default extractor.search_limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func renderSearchResults(results []extractor.SearchResult) string {
	rows := make([][]string, 0, len(results))
	for i, hit := range results {
		target := hit.URL
		if resolver.IsVideoID(hit.ID) {
			target = resolver.WatchURL(hit.ID)
		}
		duration := "-"
		if hit.Duration.Valid {
			duration = (time.Duration(hit.Duration.Value) * time.Second).String()
		}
		views := "-"
		if hit.ViewCount.Valid {
			views = humanize.Comma(hit.ViewCount.Int64())
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), hit.Title, hit.Channel, duration, views, target})
	}
	return renderTable(
		[]string{"#", "title", "channel", "duration", "views", "url"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}
