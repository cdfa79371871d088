package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crescendo/internal/journal"
	"crescendo/internal/source"
	"crescendo/internal/tracker"
	"crescendo/internal/verify"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var skipHashCheck bool
	var contentDir string

	cmd := &cobra.Command{
		Use:   "verify <torrent-id>",
		Short: "Verify a release against tracker policy, file rules, and its torrent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			torrentID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || torrentID <= 0 {
				return fmt.Errorf("invalid torrent id %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			skip := skipHashCheck || cfg.Verify.SkipHashCheck

			report, src, err := runVerification(cmd.Context(), ctx, torrentID, contentDir, skip)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), src, report)
			if report.Verified() {
				return nil
			}
			return newExitCode(1, "")
		},
	}

	cmd.Flags().BoolVar(&skipHashCheck, "skip-hash-check", false, "Skip the torrent hash phase")
	cmd.Flags().StringVar(&contentDir, "dir", "", "Release directory (defaults to paths.content_dir plus the torrent file path)")
	return cmd
}

// runVerification fetches tracker metadata, runs the engine, and records
// the outcome in the journal when enabled.
func runVerification(ctx context.Context, cctx *commandContext, torrentID int64, contentDir string, skipHash bool) (verify.Report, *source.Source, error) {
	logger := cctx.ensureLogger()
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return verify.Report{}, nil, err
	}

	api, err := cctx.newTrackerClient()
	if err != nil {
		return verify.Report{}, nil, err
	}

	resp, err := api.Torrent(ctx, torrentID)
	if err != nil {
		return verify.Report{}, nil, err
	}

	var siblings []tracker.Torrent
	if group, err := api.TorrentGroup(ctx, resp.Group.ID); err != nil {
		logger.Warn("group listing unavailable, assuming no existing editions",
			"group_id", resp.Group.ID, "error", err)
	} else {
		siblings = group.Torrents
	}

	src, err := tracker.BuildSource(resp, siblings, cfg.Paths.ContentDir)
	if err != nil {
		return verify.Report{}, nil, err
	}
	if dir := strings.TrimSpace(contentDir); dir != "" {
		src.Directory = dir
	}

	engine, err := cctx.newEngine(api)
	if err != nil {
		return verify.Report{}, nil, err
	}

	report, err := engine.Verify(ctx, src, verify.Options{SkipHashCheck: skipHash})
	if err != nil {
		return verify.Report{}, nil, err
	}

	if store, err := cctx.openJournal(); err != nil {
		logger.Warn("journal unavailable, run not recorded", "error", err)
	} else if store != nil {
		defer store.Close()
		record := journal.Run{
			RunID:       report.RunID,
			TorrentID:   torrentID,
			ReleaseName: src.String(),
			Verified:    report.Verified(),
			SkipHash:    skipHash,
			Rules:       report.Rules(),
			CreatedAt:   time.Now().UTC(),
		}
		if err := store.RecordRun(ctx, record); err != nil {
			logger.Warn("record verification run", "error", err)
		}
	}

	return report, src, nil
}

func printReport(out io.Writer, src *source.Source, report verify.Report) {
	found := report.Rules()
	if len(found) == 0 {
		fmt.Fprintf(out, "verified: %s\n", src)
		return
	}

	fmt.Fprintf(out, "rejected: %s\n", src)
	rows := make([][]string, 0, len(found))
	for _, rule := range found {
		rows = append(rows, []string{
			string(rule.Kind.Phase()),
			rule.String(),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Phase", "Finding"},
		rows,
		nil,
	))
}
