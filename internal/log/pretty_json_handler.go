package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// NewPrettyJSONHandler returns a JSON handler that indents every record for readability during
// development. Records span multiple lines, so don't point log shippers at this output.
func NewPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	buf := &bytes.Buffer{}
	return &prettyJSONHandler{
		Handler: slog.NewJSONHandler(buf, opts),
		mu:      &sync.Mutex{},
		buf:     buf,
		out:     w,
	}
}

// prettyJSONHandler lets the embedded JSON handler render into buf and re-indents from there. The
// mutex guards buf since derived handlers from WithAttrs/WithGroup share it.
type prettyJSONHandler struct {
	slog.Handler
	mu  *sync.Mutex
	buf *bytes.Buffer
	out io.Writer
}

func (h *prettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')

	_, err := h.out.Write(indented.Bytes())
	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{Handler: h.Handler.WithAttrs(attrs), mu: h.mu, buf: h.buf, out: h.out}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{Handler: h.Handler.WithGroup(name), mu: h.mu, buf: h.buf, out: h.out}
}
