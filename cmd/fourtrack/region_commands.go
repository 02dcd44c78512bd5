package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fourtrack/internal/editor"
	"fourtrack/internal/gesture"
	"fourtrack/internal/session"
)

func newRegionCommand(ctx *commandContext) *cobra.Command {
	regionCmd := &cobra.Command{
		Use:   "region",
		Short: "Edit regions on the timeline",
	}

	regionCmd.AddCommand(newRegionMoveCommand(ctx))
	regionCmd.AddCommand(newRegionRetrackCommand(ctx))
	regionCmd.AddCommand(newRegionTrimCommand(ctx))
	regionCmd.AddCommand(newRegionDuplicateCommand(ctx))
	regionCmd.AddCommand(newRegionReverseCommand(ctx))
	regionCmd.AddCommand(newRegionCutCommand(ctx))
	regionCmd.AddCommand(newRegionDeleteCommand(ctx))

	return regionCmd
}

// withRegion resolves the session and region arguments shared by every
// region subcommand.
func withRegion(ctx *commandContext, cmd *cobra.Command, sessionArg, regionArg string, fn func(*editor.Editor, session.RegionRef) error) error {
	id, err := parseSessionID(sessionArg)
	if err != nil {
		return err
	}
	return ctx.withEditor(cmd.Context(), id, func(ed *editor.Editor) error {
		ref, err := resolveRegion(ed.Session(), regionArg)
		if err != nil {
			return err
		}
		return fn(ed, ref)
	})
}

func newRegionMoveCommand(ctx *commandContext) *cobra.Command {
	var to float64

	cmd := &cobra.Command{
		Use:   "move <session-id> <region-id>",
		Short: "Move a region along its track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				if err := ed.Move(cmd.Context(), ref, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved region to %s\n", formatSeconds(to))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&to, "to", 0, "New start time in seconds")
	return cmd
}

func newRegionRetrackCommand(ctx *commandContext) *cobra.Command {
	var track int

	cmd := &cobra.Command{
		Use:   "retrack <session-id> <region-id>",
		Short: "Move a region to another track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if track < 1 || track > session.TrackCount {
				return fmt.Errorf("track must be between 1 and %d, got %d", session.TrackCount, track)
			}
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				if err := ed.Retrack(cmd.Context(), ref, track-1); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved region to track %d\n", track)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&track, "track", "t", 1, "Destination track (1-4)")
	return cmd
}

func newRegionTrimCommand(ctx *commandContext) *cobra.Command {
	var startTrim, endTrim float64

	cmd := &cobra.Command{
		Use:   "trim <session-id> <region-id>",
		Short: "Trim seconds off a region's start and end",
		Long: `Shorten a region non-destructively by trimming seconds off either end.
The underlying audio file is untouched; trims adjust the region's window
into it and clamp so at least 0.1 seconds remain.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if startTrim < 0 || endTrim < 0 {
				return fmt.Errorf("trim amounts must be non-negative")
			}
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				region, err := ed.Session().Region(ref.Track, ref.Region)
				if err != nil {
					return err
				}
				pps := ed.Layout().PixelsPerSecond
				trim := gesture.ComputeTrim(region.Duration, region.FileStartOffset,
					startTrim*pps, endTrim*pps, pps)
				if err := ed.Trim(cmd.Context(), ref, trim); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Trimmed region to %s (offset %s)\n",
					formatSeconds(trim.Duration), formatSeconds(trim.FileStartOffset))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&startTrim, "start", 0, "Seconds to trim from the region start")
	cmd.Flags().Float64Var(&endTrim, "end", 0, "Seconds to trim from the region end")
	return cmd
}

func newRegionDuplicateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <session-id> <region-id>",
		Short: "Clone a region onto the same track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				clone, err := ed.Duplicate(cmd.Context(), ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicated region as %s\n", shortID(clone.ID))
				return nil
			})
		},
	}
}

func newRegionReverseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <session-id> <region-id>",
		Short: "Toggle a region's reversed-playback flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				if err := ed.Reverse(cmd.Context(), ref); err != nil {
					return err
				}
				region, err := ed.Session().Region(ref.Track, ref.Region)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Region reversed: %s\n", yesNo(region.Reversed))
				return nil
			})
		},
	}
}

func newRegionCutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cut <session-id> <region-id>",
		Short: "Cut a region from the timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				if err := ed.Cut(cmd.Context(), ref); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Region cut")
				return nil
			})
		},
	}
}

func newRegionDeleteCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <session-id> <region-id>",
		Short: "Delete a region (requires --yes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("deleting a region requires --yes")
			}
			return withRegion(ctx, cmd, args[0], args[1], func(ed *editor.Editor, ref session.RegionRef) error {
				if err := ed.Delete(cmd.Context(), ref); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Region deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm the deletion")
	return cmd
}
