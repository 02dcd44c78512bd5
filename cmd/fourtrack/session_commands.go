package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fourtrack/internal/config"
	"fourtrack/internal/store"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage recording sessions",
	}

	sessionCmd.AddCommand(newSessionNewCommand(ctx))
	sessionCmd.AddCommand(newSessionListCommand(ctx))
	sessionCmd.AddCommand(newSessionShowCommand(ctx))
	sessionCmd.AddCommand(newSessionDeleteCommand(ctx))

	return sessionCmd
}

func newSessionNewCommand(ctx *commandContext) *cobra.Command {
	var (
		bpm         float64
		beatsPerBar int
		beatUnit    int
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new empty session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if bpm == 0 {
					bpm = cfg.Session.DefaultBPM
				}
				id, sess, err := st.CreateSession(cmd.Context(), args[0], bpm, beatsPerBar, beatUnit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created session %d (%s, %.0f BPM %d/%d)\n",
					id, sess.Name, sess.BPM, sess.BeatsPerBar, sess.BeatUnit)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&bpm, "bpm", 0, "Session tempo (defaults to the configured tempo)")
	cmd.Flags().IntVar(&beatsPerBar, "beats-per-bar", 4, "Beats per bar")
	cmd.Flags().IntVar(&beatUnit, "beat-unit", 4, "Beat unit")
	return cmd
}

func newSessionListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				infos, err := st.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), infos)
				}
				if len(infos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
					return nil
				}
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{
						strconv.FormatInt(info.ID, 10),
						info.Name,
						fmt.Sprintf("%.0f", info.BPM),
						strconv.Itoa(info.RegionCount),
						info.UpdatedAt.Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]tableColumn{
						{Title: "ID", Right: true},
						{Title: "Name"},
						{Title: "BPM", Right: true},
						{Title: "Regions", Right: true},
						{Title: "Updated"},
					},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session's tracks and regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				sess, err := st.LoadSession(cmd.Context(), id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), sess)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %.0f BPM %d/%d  duration %s\n",
					sess.Name, sess.BPM, sess.BeatsPerBar, sess.BeatUnit,
					formatSeconds(sess.MaxDuration()))
				rows := make([][]string, 0, sess.RegionCount())
				for _, track := range sess.Tracks {
					for _, region := range track.Regions {
						rows = append(rows, []string{
							strconv.Itoa(track.Number),
							shortID(region.ID),
							formatSeconds(region.StartTime),
							formatSeconds(region.Duration),
							formatSeconds(region.FileStartOffset),
							yesNo(region.Reversed),
						})
					}
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "No regions")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]tableColumn{
						{Title: "Track", Right: true},
						{Title: "Region"},
						{Title: "Start", Right: true},
						{Title: "Duration", Right: true},
						{Title: "Offset", Right: true},
						{Title: "Reversed"},
					},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSessionDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				if err := st.DeleteSession(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", id)
				return nil
			})
		},
	}
}
