package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fourtrack/internal/config"
	"fourtrack/internal/editor"
	"fourtrack/internal/importer"
	"fourtrack/internal/session"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		track     int
		at        float64
		cropStart float64
		cropEnd   float64
		noCrop    bool
	)

	cmd := &cobra.Command{
		Use:   "import <session-id> <audio-file>",
		Short: "Import an audio file as a new region",
		Long: fmt.Sprintf(`Decode an audio file, convert it to the session format (mono, %d Hz,
32-bit float WAV), and place the result as a region. Sources longer than
%.0f seconds must be cropped to fit.`, importer.TargetSampleRate, importer.MaxImportSeconds),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			if track < 1 || track > session.TrackCount {
				return fmt.Errorf("track must be between 1 and %d, got %d", session.TrackCount, track)
			}
			sourcePath, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}

			req := editor.ImportRequest{
				SourcePath:   sourcePath,
				TrackIndex:   track - 1,
				StartTime:    at,
				CropDisabled: noCrop,
			}
			if cmd.Flags().Changed("crop-start") {
				req.CropStart = &cropStart
			}
			if cmd.Flags().Changed("crop-end") {
				req.CropEnd = &cropEnd
			}

			return ctx.withEditor(cmd.Context(), id, func(ed *editor.Editor) error {
				region, err := ed.ImportFile(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as region %s on track %d at %s (duration %s)\n",
					importer.DisplayName(sourcePath), shortID(region.ID), track,
					formatSeconds(region.StartTime), formatSeconds(region.Duration))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&track, "track", "t", 1, "Destination track (1-4)")
	cmd.Flags().Float64Var(&at, "at", 0, "Timeline position in seconds")
	cmd.Flags().Float64Var(&cropStart, "crop-start", 0, "Crop window start in source seconds")
	cmd.Flags().Float64Var(&cropEnd, "crop-end", 0, "Crop window end in source seconds")
	cmd.Flags().BoolVar(&noCrop, "no-crop", false, "Import the full source without cropping")
	return cmd
}
