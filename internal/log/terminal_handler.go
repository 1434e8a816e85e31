package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// terminalHandler renders log records as coloured single-line terminal
// output:
//
//	15:04:05 INF store written path=./store entries=42
type terminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	prefix string
	attrs  []byte
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *terminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &terminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders one record and writes it under the shared mutex.
func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.Grow(256)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ansiDim + ts.Format("15:04:05") + ansiReset + " ")
	buf.WriteString(levelTag(r.Level))
	buf.WriteString(" " + ansiBold + r.Message + ansiReset)

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs pre-renders attrs so repeated loggers pay the formatting cost
// once.
func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		writeAttr(&buf, h.prefix, a)
	}
	clone := *h
	clone.attrs = buf.Bytes()
	return &clone
}

// WithGroup prefixes subsequent attribute keys with the group name.
func (h *terminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelTag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan + "DBG" + ansiReset
	case level < slog.LevelWarn:
		return ansiGreen + "INF" + ansiReset
	case level < slog.LevelError:
		return ansiYellow + "WRN" + ansiReset
	default:
		return ansiRed + "ERR" + ansiReset
	}
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(buf, inner, ga)
		}
		return
	}

	buf.WriteString(" " + ansiDim + prefix + a.Key + "=" + ansiReset)
	buf.WriteString(attrValue(a.Value))
}

func attrValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n\"\\") {
		return strconv.Quote(s)
	}
	return s
}
