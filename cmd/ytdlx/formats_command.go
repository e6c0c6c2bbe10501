package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytdlx/internal/engine"
	"ytdlx/internal/resolver"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var opts resolver.Options

	cmd := &cobra.Command{
		Use:   "formats <url|id|search terms...>",
		Short: "Show the classified formats as tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resolver(cmd.Context())
			if err != nil {
				return err
			}
			result, err := res.Resolve(cmd.Context(), joinArgs(args), opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderFormats(result.Output, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.UseTor, "tor", false, "Route the extractor through the configured Tor proxy")
	return cmd
}

// renderFormats prints the picks followed by one table per non-empty bucket.
func renderFormats(out *engine.Output, colorize bool) string {
	var b strings.Builder
	if out == nil {
		return ""
	}
	title := strings.TrimSpace(out.MetaData.Title)
	if title == "" {
		title = out.MetaData.ID
	}
	writeLines(&b, renderSectionHeader(title, colorize))

	writeLines(&b, []string{
		pickLine("Audio low", out.AudioLowF.FormatNote, out.AudioLowF.FilesizeP, !out.AudioLowF.IsZero(), colorize),
		pickLine("Audio high", out.AudioHighF.FormatNote, out.AudioHighF.FilesizeP, !out.AudioHighF.IsZero(), colorize),
		pickLine("Video low", out.VideoLowF.FormatNote, out.VideoLowF.FilesizeP, !out.VideoLowF.IsZero(), colorize),
		pickLine("Video high", out.VideoHighF.FormatNote, out.VideoHighF.FilesizeP, !out.VideoHighF.IsZero(), colorize),
	})

	audioHeaders := []string{"format note", "ext", "codec", "bitrate", "filesize"}
	audioAligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	videoHeaders := []string{"format note", "resolution", "fps", "codec", "filesize"}
	videoAligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight}

	writeTable(&b, "Audio", audioHeaders, audioRows(out.AudioHigh), audioAligns)
	writeTable(&b, "Audio DRC", audioHeaders, audioRows(out.AudioHighDRC), audioAligns)
	writeTable(&b, "Video", videoHeaders, videoRows(out.VideoHigh), videoAligns)
	writeTable(&b, "Video HDR", videoHeaders, videoRows(out.VideoHighHDR), videoAligns)
	writeTable(&b, "Manifests",
		[]string{"resolution", "fps", "codec", "vbr"},
		manifestRows(out.ManifestHigh),
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
	)
	return b.String()
}

func pickLine(label, note string, size engine.HumanSize, ok bool, colorize bool) string {
	if !ok {
		return renderStatusLine(label, statusWarn, "none", colorize)
	}
	msg := strings.TrimSpace(note + " " + size.String())
	return renderStatusLine(label, statusOK, msg, colorize)
}

func writeTable(b *strings.Builder, title string, headers []string, rows [][]string, aligns []columnAlignment) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s (%d)\n", title, len(rows))
	b.WriteString(renderTable(headers, rows, aligns))
	b.WriteString("\n")
}

func writeLines(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func audioRows(list []engine.ProjectedAudio) [][]string {
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{a.FormatNote, a.Ext, a.ACodec, formatBitrate(a.ABR), a.FilesizeP.String()})
	}
	return rows
}

func videoRows(list []engine.ProjectedVideo) [][]string {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{v.FormatNote, v.Resolution, formatNumber(v.FPS), v.VCodec, v.FilesizeP.String()})
	}
	return rows
}

func manifestRows(list []engine.ProjectedManifest) [][]string {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{m.Format, formatNumber(m.FPS), m.VCodec, formatBitrate(m.VBR)})
	}
	return rows
}

func formatNumber(n engine.Number) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%g", n.Value)
}

func formatBitrate(n engine.Number) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.0fk", n.Value)
}
