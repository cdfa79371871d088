package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crescendo/internal/watch"
)

// torrentIDMarker is the file a downloader drops next to the release
// content so watch mode can tie the directory back to its torrent.
const torrentIDMarker = ".torrent-id"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop directory and verify releases as they settle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Watch.Enabled {
				return fmt.Errorf("watch mode is disabled; set watch.enabled in the configuration")
			}

			logger := ctx.ensureLogger()
			handler := func(runCtx context.Context, dir string) {
				torrentID, err := readTorrentIDMarker(dir)
				if err != nil {
					logger.Warn("skipping release without torrent id marker",
						"dir", dir, "marker", torrentIDMarker, "error", err)
					return
				}
				// An in-flight run finishes even when shutdown has begun.
				report, src, err := runVerification(context.WithoutCancel(runCtx), ctx, torrentID, dir, cfg.Verify.SkipHashCheck)
				if err != nil {
					logger.Error("verification failed", "dir", dir, "torrent_id", torrentID, "error", err)
					return
				}
				logger.Info("verification finished",
					"release", src.String(),
					"torrent_id", torrentID,
					"verified", report.Verified(),
					"rules", len(report.Rules()))
			}

			watcher, err := watch.New(cfg.Watch.Dir, time.Duration(cfg.Watch.SettleSeconds)*time.Second, logger, handler)
			if err != nil {
				return err
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = watcher.Run(runCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func readTorrentIDMarker(dir string) (int64, error) {
	raw, err := os.ReadFile(filepath.Join(dir, torrentIDMarker))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("marker does not contain a torrent id: %q", strings.TrimSpace(string(raw)))
	}
	return id, nil
}
