package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytdlx/internal/engine"
	"ytdlx/internal/resolver"
)

const (
	slotVideoHigh = "video-high"
	slotVideoLow  = "video-low"
	slotAudioHigh = "audio-high"
	slotAudioLow  = "audio-low"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var slot string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <url|id|search terms...>",
		Short: "Run ffprobe against one of the picked streams",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resolver(cmd.Context())
			if err != nil {
				return err
			}
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			result, err := res.Resolve(cmd.Context(), joinArgs(args), resolver.Options{})
			if err != nil {
				return err
			}
			target, err := pickURL(result.Output, slot)
			if err != nil {
				return err
			}
			probe, err := prober.Probe(cmd.Context(), target)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, probe)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Slot:     %s\n", slot)
			fmt.Fprintf(out, "Streams:  %s\n", probe.Summary())
			if size := probe.SizeBytes(); size > 0 {
				fmt.Fprintf(out, "Size:     %s\n", humanize.IBytes(uint64(size)))
			}
			if rate := probe.BitRate(); rate > 0 {
				fmt.Fprintf(out, "Bitrate:  %s/s\n", humanize.SI(float64(rate), "b"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&slot, "slot", slotVideoHigh, "Pick to probe: video-high, video-low, audio-high, audio-low")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output raw ffprobe data as JSON")
	return cmd
}

// pickURL returns the URL for a scalar pick slot. An empty high slot falls
// back to the low slot of the same kind.
func pickURL(out *engine.Output, slot string) (string, error) {
	var primary, fallback string
	switch strings.ToLower(strings.TrimSpace(slot)) {
	case slotVideoHigh:
		primary, fallback = out.VideoHighF.URL, out.VideoLowF.URL
	case slotVideoLow:
		primary = out.VideoLowF.URL
	case slotAudioHigh:
		primary, fallback = out.AudioHighF.URL, out.AudioLowF.URL
	case slotAudioLow:
		primary = out.AudioLowF.URL
	default:
		return "", fmt.Errorf("unknown slot %q", slot)
	}
	if url := firstNonEmpty(primary, fallback); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("no stream picked for %s", slot)
}
