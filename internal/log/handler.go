// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"

	"github.com/gatherhub/gatherhub/internal/middleware"
	"github.com/gatherhub/gatherhub/pkg/model"
)

// ContextHandler copies request-scoped values from the [context.Context] onto every
// [slog.Record]. It uses the same attribute keys as [middleware.RequestLogger] so log lines from
// handlers and from the middleware can be correlated. Both values are optional, logs written
// outside an HTTP request simply won't have them.
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		r.AddAttrs(slog.String(middleware.RequestLoggerKeyCorrelationID, id))
	}

	if user, ok := model.GetUserFromContext(ctx); ok {
		r.AddAttrs(slog.Group(middleware.RequestLoggerKeyUser,
			slog.Uint64("id", uint64(user.ID)),
			slog.String("email", user.Email)))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(h.Handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return New(h.Handler.WithGroup(name))
}
