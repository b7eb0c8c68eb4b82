// Package safego runs goroutines that log panics instead of crashing
// the process.
package safego

import (
	"context"
	"runtime/debug"

	"github.com/sibylline/sibyl/pkg/logger"
)

// Go starts fn on a new goroutine and recovers any panic, logging the
// value and stack. The context is passed through untouched; it exists so
// call sites document which lifecycle the goroutine belongs to.
func Go(ctx context.Context, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("goroutine panic recovered: %v\n%s", r, debug.Stack())
			}
		}()
		_ = ctx
		fn()
	}()
}
