// Package logging installs a slog handler that prints compact, coloured
// console lines tagged with the emitting component.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Component names attached with the "component" attribute
const (
	ComponentDatabase  = "database"
	ComponentBot       = "bot"
	ComponentRewards   = "rewards"
	ComponentOrders    = "orders"
	ComponentNotify    = "notify"
	ComponentKeepAlive = "keepalive"
)

var (
	debugColor = color.New(color.FgHiBlack)
	infoColor  = color.New(color.FgWhite)
	warnColor  = color.New(color.FgHiYellow)
	errorColor = color.New(color.FgHiRed)

	componentColors = map[string]*color.Color{
		"DATABASE":  color.New(color.FgHiBlack),
		"BOT":       color.New(color.FgHiMagenta),
		"REWARDS":   color.New(color.FgHiYellow),
		"ORDERS":    color.New(color.FgHiCyan),
		"NOTIFY":    color.New(color.FgHiBlue),
		"KEEPALIVE": color.New(color.FgGreen),
	}
)

// Options configures a Handler
type Options struct {
	Level slog.Leveler
	// NoColor disables ANSI sequences, used for the log file copy
	NoColor bool
	// Now overrides the timestamp source
	Now func() time.Time
}

// Handler renders records as "15:04:05 [LEVEL] [COMPONENT] message key=value".
type Handler struct {
	w     io.Writer
	opts  Options
	mu    *sync.Mutex
	attrs []slog.Attr
}

func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	if h.opts.Now == nil {
		h.opts.Now = time.Now
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	levelStr, levelColor := levelStyle(r.Level)

	component := ""
	var extra []string
	collect := func(a slog.Attr) bool {
		if a.Key == "component" {
			component = strings.ToUpper(a.Value.String())
			return true
		}
		extra = append(extra, fmt.Sprintf("%s=%v", a.Key, a.Value.Any()))
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var b strings.Builder
	b.WriteString(h.opts.Now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(h.paint(levelColor, "["+levelStr+"]"))
	if component != "" {
		b.WriteByte(' ')
		b.WriteString(h.paint(componentColor(component), "["+component+"]"))
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, kv := range extra {
		b.WriteByte(' ')
		b.WriteString(kv)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// Groups are flattened
func (h *Handler) WithGroup(string) slog.Handler { return h }

func (h *Handler) paint(c *color.Color, s string) string {
	if h.opts.NoColor {
		return s
	}
	return c.Sprint(s)
}

func levelStyle(level slog.Level) (string, *color.Color) {
	switch {
	case level >= slog.LevelError:
		return "ERROR", errorColor
	case level >= slog.LevelWarn:
		return "WARN", warnColor
	case level >= slog.LevelInfo:
		return "INFO", infoColor
	default:
		return "DEBUG", debugColor
	}
}

func componentColor(name string) *color.Color {
	if c, ok := componentColors[name]; ok {
		return c
	}
	return color.New(color.FgCyan)
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// Setup installs the default logger. When logFile is set an uncoloured copy
// is appended to it; the returned func closes that file.
func Setup(debug bool, logFile string) (func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler = NewHandler(color.Output, &Options{Level: level})
	closer := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		handler = fanout{handler, NewHandler(f, &Options{Level: level, NoColor: true})}
		closer = f.Close
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

// For returns the default logger tagged with a component
func For(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

func Database(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentDatabase))
}

func Bot(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentBot))
}

func Rewards(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentRewards))
}

func Orders(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentOrders))
}

func Notify(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentNotify))
}

func KeepAlive(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", ComponentKeepAlive))
}

// Error logs at error level under a component
func Error(component, format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), slog.String("component", component))
}

// Warn logs at warn level under a component
func Warn(component, format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...), slog.String("component", component))
}

func Debug(component, format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), slog.String("component", component))
}
