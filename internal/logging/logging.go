package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Mode controls the handler style used when constructing a logger.
type Mode int

const (
	// ModeCLI renders log records in a terse text-oriented format.
	ModeCLI Mode = iota
	// ModeJSON renders log records as JSON.
	ModeJSON
)

// New constructs a logger targeting the provided writer using the requested
// mode. If level is nil, slog.LevelInfo is used.
func New(mode Mode, w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		panic("logging: writer must not be nil")
	}
	if level == nil {
		level = slog.LevelInfo
	}

	if mode == ModeJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(&cliHandler{writer: w, level: level, mu: &sync.Mutex{}})
}

// NewCLI constructs a logger that emits human-readable records suitable for
// CLI use.
func NewCLI(w io.Writer, level slog.Leveler) *slog.Logger {
	return New(ModeCLI, w, level)
}

// NewJSON constructs a logger that emits structured JSON records.
func NewJSON(w io.Writer, level slog.Leveler) *slog.Logger {
	return New(ModeJSON, w, level)
}

// Ensure returns the provided logger or the process default if nil.
func Ensure(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// cliHandler prints records as "LEVEL timestamp | message key=value ...".
// Attribute keys accumulated through WithAttrs and WithGroup are rendered
// with dotted group prefixes.
type cliHandler struct {
	writer io.Writer
	level  slog.Leveler
	prefix string
	attrs  string

	mu *sync.Mutex
}

func (h *cliHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.level != nil {
		minLevel = h.level.Level()
	}
	return level >= minLevel
}

func (h *cliHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var builder strings.Builder
	builder.WriteString(strings.ToUpper(record.Level.String()))
	builder.WriteByte(' ')
	builder.WriteString(timestamp.UTC().Format(time.RFC3339))
	builder.WriteString(" | ")
	builder.WriteString(record.Message)
	builder.WriteString(h.attrs)

	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&builder, h.prefix, attr)
		return true
	})
	builder.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.writer, builder.String())
	return err
}

func (h *cliHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var builder strings.Builder
	builder.WriteString(h.attrs)
	for _, attr := range attrs {
		writeAttr(&builder, h.prefix, attr)
	}

	clone := *h
	clone.attrs = builder.String()
	return &clone
}

func (h *cliHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func writeAttr(builder *strings.Builder, prefix string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		for _, nested := range value.Group() {
			writeAttr(builder, prefix+attr.Key+".", nested)
		}
		return
	}

	builder.WriteByte(' ')
	builder.WriteString(prefix)
	builder.WriteString(attr.Key)
	builder.WriteByte('=')
	builder.WriteString(formatValue(value))
}

func formatValue(value slog.Value) string {
	switch value.Kind() {
	case slog.KindTime:
		return value.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := value.Any().(error); ok && err != nil {
			return err.Error()
		}
		return fmt.Sprint(value.Any())
	default:
		return value.String()
	}
}
