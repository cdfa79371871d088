package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crescendo/internal/flacfile"
	"crescendo/internal/formats"
	"crescendo/internal/paths"
	"crescendo/internal/rules"
	"crescendo/internal/services"
	"crescendo/internal/source"
)

// TargetProvider computes eligible transcode targets for a source.
type TargetProvider interface {
	Targets(src formats.Format, existing formats.Set) []formats.Format
}

// FileCollector enumerates the FLAC files of a source directory in a stable
// order.
type FileCollector interface {
	FindFlacs(dir string) ([]string, error)
}

// Inspector reads stream properties and tags for one FLAC file. Unreadable
// files are hard errors.
type Inspector interface {
	Inspect(ctx context.Context, path string) (flacfile.Info, error)
}

// Shortener emits advisory naming suggestions; it never alters the verdict.
type Shortener interface {
	SuggestTrack(flacPath string)
	SuggestAlbum(src *source.Source)
}

// DescriptorFetcher downloads the reference torrent descriptor for a source.
type DescriptorFetcher interface {
	DownloadTorrent(ctx context.Context, id int64) ([]byte, error)
}

// TorrentChecker verifies on-disk content against a torrent descriptor.
type TorrentChecker interface {
	Verify(ctx context.Context, descriptor []byte, contentDir string) ([]rules.Rule, error)
}

// Options adjusts a single verification run.
type Options struct {
	// SkipHashCheck suppresses the hash phase entirely: no descriptor fetch,
	// no torrent verification, an empty hash rule list.
	SkipHashCheck bool
}

// Report is the aggregated outcome of one verification run. Rule order
// within each phase is detection order; Rules concatenates the phases in
// pipeline order.
type Report struct {
	RunID  string
	Policy []rules.Rule
	Files  []rules.Rule
	Hash   []rules.Rule
}

// Verified reports whether every phase came back clean.
func (r Report) Verified() bool {
	return len(r.Policy) == 0 && len(r.Files) == 0 && len(r.Hash) == 0
}

// Rules returns the phase-ordered concatenation of all findings.
func (r Report) Rules() []rules.Rule {
	out := make([]rules.Rule, 0, len(r.Policy)+len(r.Files)+len(r.Hash))
	out = append(out, r.Policy...)
	out = append(out, r.Files...)
	out = append(out, r.Hash...)
	return out
}

// Deps wires the engine's collaborators.
type Deps struct {
	Targets   TargetProvider
	Collector FileCollector
	Inspector Inspector
	Shortener Shortener
	API       DescriptorFetcher
	Torrents  TorrentChecker
	Logger    *slog.Logger

	// Workers bounds the per-file check pool; <= 0 uses GOMAXPROCS.
	Workers int
}

// Engine runs the verification pipeline.
type Engine struct {
	targets  TargetProvider
	collect  FileCollector
	inspect  Inspector
	shorten  Shortener
	api      DescriptorFetcher
	torrents TorrentChecker
	tags     TagVerifier
	streams  StreamVerifier
	logger   *slog.Logger
	workers  int
}

// NewEngine validates and assembles the engine.
func NewEngine(deps Deps) (*Engine, error) {
	if deps.Targets == nil || deps.Collector == nil || deps.Inspector == nil || deps.Shortener == nil {
		return nil, errors.New("verify engine requires targets, collector, inspector, and shortener")
	}
	if deps.API == nil || deps.Torrents == nil {
		return nil, errors.New("verify engine requires tracker API and torrent checker")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		targets:  deps.Targets,
		collect:  deps.Collector,
		inspect:  deps.Inspector,
		shorten:  deps.Shortener,
		api:      deps.API,
		torrents: deps.Torrents,
		logger:   logger.With("component", "verify"),
		workers:  workers,
	}, nil
}

// Verify runs all three phases against the source and returns the aggregated
// report. A returned error means the run could not be completed and no
// verdict exists.
func (e *Engine) Verify(ctx context.Context, src *source.Source, opts Options) (Report, error) {
	if src == nil {
		return Report{}, services.Wrap(services.ErrValidation, "verify", "run", "source required", nil)
	}
	report := Report{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, report.RunID)
	logger := e.logger.With("run_id", report.RunID, "source", src.String())
	logger.Info("verifying source")

	targets := e.targets.Targets(src.Format, src.Existing)

	report.Policy = policyRules(src, targets)
	e.logPhase(logger, rules.PhasePolicy, report.Policy)

	fileRules, err := e.fileChecks(services.WithPhase(ctx, string(rules.PhaseFiles)), src, targets)
	if err != nil {
		return Report{}, err
	}
	report.Files = fileRules
	e.logPhase(logger, rules.PhaseFiles, report.Files)

	if opts.SkipHashCheck {
		logger.Debug("hash check skipped by configuration")
	} else {
		hashRules, err := e.hashCheck(services.WithPhase(ctx, string(rules.PhaseHash)), src)
		if err != nil {
			return Report{}, err
		}
		report.Hash = hashRules
		e.logPhase(logger, rules.PhaseHash, report.Hash)
	}

	if report.Verified() {
		logger.Info("source verified")
	} else {
		logger.Warn("source rejected", "rules", len(report.Rules()))
		for _, rule := range report.Rules() {
			logger.Warn(rule.String())
		}
	}
	return report, nil
}

// fileChecks runs the per-file tag, stream, and path-length checks. The two
// short-circuits (missing directory, empty file list) are findings, not
// errors; anything preventing a file from being read at all is a hard error.
func (e *Engine) fileChecks(ctx context.Context, src *source.Source, targets []formats.Format) ([]rules.Rule, error) {
	info, statErr := os.Stat(src.Directory)
	if statErr != nil || !info.IsDir() {
		return []rules.Rule{rules.At(rules.SourceDirectoryNotFound, src.Directory)}, nil
	}

	flacs, err := e.collect.FindFlacs(src.Directory)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "verify", "collect files", src.Directory, err)
	}
	if len(flacs) == 0 {
		return []rules.Rule{rules.At(rules.NoFlacFiles, src.Directory)}, nil
	}

	// Per-file checks are independent; run them on a bounded pool and
	// flatten in collector order so reporting stays deterministic.
	perFile := make([][]rules.Rule, len(flacs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)
	for i, flac := range flacs {
		group.Go(func() error {
			found, err := e.checkFile(groupCtx, src, flac, targets)
			if err != nil {
				return err
			}
			perFile[i] = found
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var found []rules.Rule
	for _, fileRules := range perFile {
		found = append(found, fileRules...)
	}
	if rules.Contains(found, rules.PathTooLong) {
		e.shorten.SuggestAlbum(src)
	}
	return found, nil
}

func (e *Engine) checkFile(ctx context.Context, src *source.Source, flac string, targets []formats.Format) ([]rules.Rule, error) {
	var found []rules.Rule

	// No targets means no candidate output paths to measure.
	if len(targets) > 0 {
		maxPath := paths.MaxTranscodeSubPath(src, flac, targets)
		if len(maxPath) > paths.MaxLength {
			found = append(found, rules.At(rules.PathTooLong, maxPath))
			e.shorten.SuggestTrack(flac)
		}
	}

	info, err := e.inspect.Inspect(ctx, flac)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "verify", "inspect file", flac, err)
	}
	found = append(found, e.tags.Check(info, src.Release)...)
	found = append(found, e.streams.Check(info)...)
	return found, nil
}

// hashCheck fetches the reference descriptor and verifies the on-disk
// content against it. Network or tool failure is a hard error; a source
// cannot be partially hash-verified.
func (e *Engine) hashCheck(ctx context.Context, src *source.Source) ([]rules.Rule, error) {
	descriptor, err := e.api.DownloadTorrent(ctx, src.Torrent.ID)
	if err != nil {
		return nil, err
	}
	return e.torrents.Verify(ctx, descriptor, src.Directory)
}

func (e *Engine) logPhase(logger *slog.Logger, phase rules.Phase, found []rules.Rule) {
	if len(found) == 0 {
		logger.Debug("phase passed", "phase", string(phase))
		return
	}
	logger.Debug("phase failed", "phase", string(phase), "rules", len(found))
	for _, rule := range found {
		logger.Debug(fmt.Sprintf("  %s", rule))
	}
}
