package hal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandlerOptions configures NewPrettyHandler.
type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
}

// PrettyHandler is a slog.Handler that prints one colorized line per record:
// time, level, message, then key=value attributes.
type PrettyHandler struct {
	opts  PrettyHandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

// NewPrettyHandler returns a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.SlogOpts.Level != nil {
		min = h.opts.SlogOpts.Level.Level()
	}
	return level >= min
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	msg := r.Message
	if !h.opts.NoColor {
		switch {
		case r.Level >= slog.LevelError:
			level = color.RedString(level)
		case r.Level >= slog.LevelWarn:
			level = color.YellowString(level)
		case r.Level >= slog.LevelInfo:
			level = color.BlueString(level)
		default:
			level = color.MagentaString(level)
		}
		msg = color.CyanString(msg)
	}

	var b strings.Builder
	b.WriteString(r.Time.Format("[15:04:05.000]"))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)

	writeAttr := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		kv := fmt.Sprintf("%s=%v", key, a.Value.Any())
		if !h.opts.NoColor {
			kv = color.WhiteString(kv)
		}
		b.WriteByte(' ')
		b.WriteString(kv)
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &cp
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	cp := *h
	if cp.group != "" {
		name = cp.group + "." + name
	}
	cp.group = name
	return &cp
}

// SlogLevel maps a LogLevel onto slog.
func SlogLevel(l LogLevel) slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a slog.Logger to the Logger interface. A nil logger
// uses slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

func (s slogLogger) WriteLine(level LogLevel, line string) {
	s.l.Log(context.Background(), SlogLevel(level), line)
}
