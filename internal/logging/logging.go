package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Options selects the handler used for a logger.
type Options struct {
	// Format is "console" or "json".
	Format string
	// Level is one of debug, info, warn, error.
	Level string
	// Writer receives the formatted records. Defaults to os.Stderr.
	Writer io.Writer
	// ForceColor enables ANSI colors even when Writer is not a TTY.
	ForceColor bool
}

// New builds a logger from opts. Unknown formats fall back to console
// output and unknown levels fall back to info.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := ParseLevel(opts.Level)
	if strings.EqualFold(opts.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(newConsoleHandler(w, level, opts.ForceColor))
}

// ParseLevel maps a config level string to a slog.Level. Empty and
// unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
)

// consoleHandler renders records as a timestamped single line with the
// attribute bag appended as key=value pairs. Designed for interactive
// runs; JSON output is the better choice for anything parsed.
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	color bool
	attrs []slog.Attr
	group string
}

func newConsoleHandler(w io.Writer, level slog.Level, forceColor bool) *consoleHandler {
	color := forceColor
	if !color {
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &consoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		color: color,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(h.dim(record.Time.Format(time.TimeOnly)))
	b.WriteByte(' ')
	b.WriteString(h.levelTag(record.Level))
	b.WriteByte(' ')
	b.WriteString(record.Message)

	pairs := make([]string, 0, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		pairs = appendAttr(pairs, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		pairs = appendAttr(pairs, h.group, attr)
		return true
	})
	sort.Strings(pairs)
	for _, pair := range pairs {
		b.WriteByte(' ')
		b.WriteString(h.dim(pair))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs qualifies the new attrs with the group open at the time they
// were attached, so later WithGroup calls do not retroactively prefix them.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, attr := range attrs {
		if h.group != "" {
			attr.Key = h.group + "." + attr.Key
		}
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *consoleHandler) levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return h.paint(ansiRed, "ERROR")
	case level >= slog.LevelWarn:
		return h.paint(ansiYellow, "WARN ")
	case level >= slog.LevelInfo:
		return h.paint(ansiBlue, "INFO ")
	default:
		return h.paint(ansiCyan, "DEBUG")
	}
}

func (h *consoleHandler) paint(code, s string) string {
	if !h.color {
		return s
	}
	return code + s + ansiReset
}

func (h *consoleHandler) dim(s string) string {
	return h.paint(ansiDim, s)
}

func appendAttr(pairs []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return pairs
	}
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, nested := range attr.Value.Group() {
			pairs = appendAttr(pairs, key, nested)
		}
		return pairs
	}
	return append(pairs, fmt.Sprintf("%s=%v", key, attr.Value))
}
