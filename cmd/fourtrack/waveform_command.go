package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fourtrack/internal/editor"
	"fourtrack/internal/session"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

var sparkLevels = []rune(" ▁▂▃▄▅▆▇█")

func newWaveformCommand(ctx *commandContext) *cobra.Command {
	var (
		points int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "waveform <session-id> <region-id>",
		Short: "Render a region's waveform",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				peaks, err := ed.Waveform(cmd.Context(), ref, points)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), peaks)
				}
				out := cmd.OutOrStdout()
				line := sparkline(peaks)
				if shouldColorize(out) {
					line = ansiBlue + line + ansiReset
				}
				fmt.Fprintln(out, line)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&points, "points", 0, "Number of waveform points (defaults to the configured resolution)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw peak values as JSON")
	return cmd
}

// sparkline maps peaks in [0, 1] onto eighth-block characters.
func sparkline(peaks []float32) string {
	var b strings.Builder
	for _, p := range peaks {
		idx := int(p * float32(len(sparkLevels)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkLevels) {
			idx = len(sparkLevels) - 1
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
