// SPDX-License-Identifier: MIT

// Package worker runs one computation off the caller's goroutine so the
// caller can stop waiting on timeout or cancellation.
//
// The kernels in this module are not interruptible: when ctx ends first,
// Run returns ctx.Err() at once and the job keeps running to completion in
// the background; its result is discarded.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Option configures Run.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	timeout time.Duration
	name    string
}

// WithLogger sets the logger used for start/finish/abandon diagnostics.
// Without it Run does not log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTimeout bounds the wait. d ≤ 0 means no extra bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithName labels log records.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

type result[T any] struct {
	v   T
	err error
}

// Run executes job on a new goroutine and waits for it or for ctx.
//
// Errors:
//   - ctx.Err() (context.DeadlineExceeded, context.Canceled) when ctx ends
//     first, wrapped with the job name.
//   - the job's own error, unchanged.
//   - a panic inside job is recovered and returned as an error.
func Run[T any](ctx context.Context, job func() (T, error), opts ...Option) (T, error) {
	var o options
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	if o.name == "" {
		o.name = "job"
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	done := make(chan result[T], 1)
	start := time.Now()
	o.debug("job started", "job", o.name)

	go func() {
		var r result[T]
		defer func() {
			if p := recover(); p != nil {
				r.err = fmt.Errorf("%s: panic: %v", o.name, p)
			}
			done <- r
		}()
		r.v, r.err = job()
	}()

	select {
	case r := <-done:
		o.debug("job finished", "job", o.name, "elapsed", time.Since(start), "error", r.err)
		return r.v, r.err
	case <-ctx.Done():
		if o.logger != nil {
			o.logger.Warn("job abandoned", "job", o.name, "elapsed", time.Since(start), "reason", ctx.Err())
		}
		var zero T
		return zero, fmt.Errorf("%s: %w", o.name, ctx.Err())
	}
}

func (o options) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}
