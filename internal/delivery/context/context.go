package context

import (
	"context"
	"log/slog"
	"sync"

	"addrcard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyNavigation is the key for storing the request's navigation recorder.
	KeyNavigation ContextKey = "navigation"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// NavigationRecorder keeps the last screen requested while handling one request,
// so the response can tell the client where to go next.
type NavigationRecorder struct {
	mu     sync.Mutex
	screen entity.Screen
}

// Record stores screen, replacing any earlier request
func (r *NavigationRecorder) Record(screen entity.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen = screen
}

// Screen returns the recorded screen and whether one was requested
func (r *NavigationRecorder) Screen() (entity.Screen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.screen, r.screen != ""
}

// WithNavigation returns a new context carrying a fresh NavigationRecorder.
func WithNavigation(ctx context.Context) (context.Context, *NavigationRecorder) {
	recorder := &NavigationRecorder{}

	return context.WithValue(ctx, KeyNavigation, recorder), recorder
}

// GetNavigation extracts the NavigationRecorder from context.Context.
// If not found, returns nil.
func GetNavigation(ctx context.Context) *NavigationRecorder {
	if recorder, ok := ctx.Value(KeyNavigation).(*NavigationRecorder); ok {
		return recorder
	}

	return nil
}
