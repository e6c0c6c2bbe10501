package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytdlx/internal/engine"
	"ytdlx/internal/resolver"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <url|id|search terms...>",
		Short: "Show video metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resolver(cmd.Context())
			if err != nil {
				return err
			}
			result, err := res.Resolve(cmd.Context(), joinArgs(args), resolver.Options{})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result.Output.MetaData)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMetaData(result.URL, result.Output.MetaData))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output metadata as JSON")
	return cmd
}

func renderMetaData(url string, meta engine.MetaData) string {
	rows := [][]string{
		{"Title", meta.Title},
		{"ID", meta.ID},
		{"URL", url},
		{"Channel", firstNonEmpty(meta.Channel, meta.Uploader)},
		{"Duration", formatDuration(meta)},
		{"Views", formatCount(meta.ViewCount)},
		{"Likes", formatCount(meta.LikeCount)},
		{"Comments", formatCount(meta.CommentCount)},
		{"Followers", formatCount(meta.ChannelFollowerCount)},
		{"Uploaded", formatUploadDate(meta.UploadDate)},
		{"Live status", meta.LiveStatus},
	}
	if meta.AgeLimit.Valid && meta.AgeLimit.Value > 0 {
		rows = append(rows, []string{"Age limit", fmt.Sprintf("%d+", meta.AgeLimit.Int64())})
	}
	if len(meta.Categories) > 0 {
		rows = append(rows, []string{"Categories", strings.Join(meta.Categories, ", ")})
	}
	filtered := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(row[1]) != "" {
			filtered = append(filtered, row)
		}
	}
	return renderTable([]string{"field", "value"}, filtered, nil) + "\n"
}

func formatDuration(meta engine.MetaData) string {
	if meta.DurationString != "" {
		return meta.DurationString
	}
	if !meta.Duration.Valid {
		return ""
	}
	return (time.Duration(meta.Duration.Value) * time.Second).String()
}

func formatCount(n engine.Number) string {
	if !n.Valid {
		return ""
	}
	return humanize.Comma(n.Int64())
}

// formatUploadDate renders the extractor's YYYYMMDD date with a relative age.
func formatUploadDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, err := time.Parse("20060102", value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%s (%s)", parsed.Format("2006-01-02"), humanize.Time(parsed))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
