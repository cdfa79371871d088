package main

import (
	"log/slog"
	"strings"
	"sync"

	"crescendo/internal/collector"
	"crescendo/internal/config"
	"crescendo/internal/flacfile"
	"crescendo/internal/formats"
	"crescendo/internal/journal"
	"crescendo/internal/logging"
	"crescendo/internal/naming"
	"crescendo/internal/services/imdl"
	"crescendo/internal/tracker"
	"crescendo/internal/verify"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		opts := logging.Options{}
		if cfg, err := c.ensureConfig(); err == nil {
			opts.Format = cfg.Logging.Format
			opts.Level = cfg.Logging.Level
		}
		c.logger = logging.New(opts)
	})
	return c.logger
}

// newTrackerClient builds the Gazelle client from configuration.
func (c *commandContext) newTrackerClient() (*tracker.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return tracker.New(cfg.Tracker.URL, cfg.Tracker.APIKey, cfg.Tracker.UserAgent)
}

// newEngine assembles the verification engine with its production
// collaborators.
func (c *commandContext) newEngine(api *tracker.Client) (*verify.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()

	return verify.NewEngine(verify.Deps{
		Targets:   formats.NewProvider(cfg.AllowedTargetSet()),
		Collector: collector.Dir{},
		Inspector: flacfile.Inspector{FullDecode: cfg.Verify.FullDecode},
		Shortener: naming.NewShortener(logger),
		API:       api,
		Torrents:  imdl.New(cfg.Verify.ImdlBinary),
		Logger:    logger,
		Workers:   cfg.Verify.Workers,
	})
}

func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(cfg)
}
