package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey int

var correlationIDKey ctxKey

// RequestLoggerKeyCorrelationID is the attribute key under which the correlation id is logged.
const RequestLoggerKeyCorrelationID = "correlationId"

// RequestLoggerKeyUser is the attribute key under which the authenticated user is logged.
const RequestLoggerKeyUser = "user"

const requestIDHeader = "X-Request-ID"

// CorrelationID is a Gin middleware that stores a correlation id on the [http.Request.Context]. An
// incoming X-Request-ID is reused so ids can follow a request across services, otherwise one is
// generated. The id is echoed back on the response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := NewContextWithCorrelationID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}

// NewContextWithCorrelationID returns a new [context.Context] that carries value correlationID.
func NewContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// GetCorrelationID returns the correlation ID stored in the ctx, if any. It had to have been set by
// the [CorrelationID] middleware before.
func GetCorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok
}

// RequestLogger logs one line per request. The log level follows the response status, client
// errors log as warnings and server errors as errors.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.Group("request",
				slog.Time("time", start),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("route", c.FullPath()),
				slog.String("query", c.Request.URL.RawQuery),
				slog.String("host", c.Request.Host),
				slog.String("userAgent", c.Request.UserAgent()),
				slog.String("ip", c.ClientIP()),
			),
			slog.Group("response",
				slog.Duration("latency", time.Since(start)),
				slog.Int("status", status),
				slog.Int("size", c.Writer.Size()),
			),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), level, "Processed HTTP request", attrs...)
	}
}
