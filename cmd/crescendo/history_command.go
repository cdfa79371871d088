package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"crescendo/internal/journal"
)

func listRuns(cmd *cobra.Command, store *journal.Store, torrentID int64, limit int) ([]journal.Run, error) {
	if torrentID > 0 {
		runs, err := store.ListForTorrent(cmd.Context(), torrentID)
		if err != nil {
			return nil, err
		}
		if limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}
		return runs, nil
	}
	return store.ListRecent(cmd.Context(), limit)
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var torrentID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent verification runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled in configuration")
			}

			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := listRuns(cmd, store, torrentID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No verification runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				verdict := "rejected"
				if run.Verified {
					verdict = "verified"
				}
				hash := "checked"
				if run.SkipHash {
					hash = "skipped"
				}
				rows = append(rows, []string{
					strconv.FormatInt(run.TorrentID, 10),
					run.ReleaseName,
					verdict,
					strconv.Itoa(len(run.Rules)),
					hash,
					humanize.Time(run.CreatedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Torrent", "Release", "Verdict", "Rules", "Hash", "When"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().Int64Var(&torrentID, "torrent", 0, "Show runs for one torrent id only")
	return cmd
}
