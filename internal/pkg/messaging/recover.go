package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/otpsender/internal/pkg/stacktrace"
)

// recoverHandler wraps a Handler so a panic in event processing is logged
// and surfaced as an error instead of killing the consumer goroutine.
func recoverHandler(h Handler) Handler {
	return func(ctx context.Context, d Delivery) (err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				paths := stacktrace.InternalPaths(stack)
				if len(paths) == 0 {
					slog.ErrorContext(ctx, "panic in messaging handler", "source", d.Source, "panic", rvr, "stack", string(stack))
				} else {
					slog.ErrorContext(ctx, "panic in messaging handler", "source", d.Source, "panic", rvr, "stack", paths)
				}
				err = fmt.Errorf("pkgmessage: panic in handler: %v", rvr)
			}
		}()

		return h(ctx, d)
	}
}
