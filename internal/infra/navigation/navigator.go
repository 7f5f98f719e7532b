// Package navigation implements service.Navigator for the HTTP server and the CLI.
package navigation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	deliverycontext "addrcard/internal/delivery/context"
	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/service"
)

type requestNavigator struct {
	logger *slog.Logger
}

// New returns a Navigator that records the target screen on the request's
// NavigationRecorder. Outside a request the transition is only logged.
func New(logger *slog.Logger) service.Navigator {
	return &requestNavigator{logger: logger}
}

func (n *requestNavigator) GoTo(ctx context.Context, screen entity.Screen) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)

	recorder := deliverycontext.GetNavigation(ctx)
	if recorder == nil {
		logger.DebugContext(ctx, "Navigation requested without a recorder", slog.String("screen", string(screen)))

		return
	}

	recorder.Record(screen)
	logger.DebugContext(ctx, "Navigation requested", slog.String("screen", string(screen)))
}

type writerNavigator struct {
	w io.Writer
}

// NewWriter returns a Navigator that prints the next screen as a hint, used
// by the command line client.
func NewWriter(w io.Writer) service.Navigator {
	return &writerNavigator{w: w}
}

func (n *writerNavigator) GoTo(_ context.Context, screen entity.Screen) {
	_, _ = fmt.Fprintf(n.w, "next: %s\n", screen)
}
