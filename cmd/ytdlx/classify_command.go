package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytdlx/internal/engine"
)

// newClassifyCommand classifies a saved extractor dump without running
// yt-dlp, which keeps it usable offline and in pipelines.
func newClassifyCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:         "classify [file|-]",
		Short:       "Classify a saved yt-dlp -J dump",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = strings.TrimSpace(args[0])
			}
			data, err := readSource(cmd, source)
			if err != nil {
				return err
			}
			out, err := engine.ClassifyJSON(data)
			if err != nil {
				return err
			}
			if table {
				fmt.Fprint(cmd.OutOrStdout(), renderFormats(out, shouldColorize(cmd.OutOrStdout())))
				return nil
			}
			return writeJSON(cmd, out)
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Render tables instead of JSON")
	return cmd
}

func readSource(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "" || source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}
