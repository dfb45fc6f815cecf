package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Worker-pool bounds. The default matches what S3 tolerates comfortably
// for metadata copies from a single client.
const (
	MinWorkers     = 1
	MaxWorkers     = 20
	DefaultWorkers = 10
)

// ClampWorkers forces a worker count into the valid range.
func ClampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Run dispatches items to at most workers concurrent invocations of fn
// and aggregates the outcomes. One item failing never stops the others.
//
// report, when non-nil, is called from a single goroutine with a
// 1-based index that increases monotonically in completion order, so
// callers can print "[i/N]" progress without caring about scheduling.
func Run[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) Outcome, report func(i, n int, o Outcome)) Summary {
	n := len(items)
	summary := Summary{}
	if n == 0 {
		return summary
	}

	outcomes := make(chan Outcome, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ClampWorkers(workers))

	go func() {
		for _, item := range items {
			item := item
			g.Go(func() error {
				outcomes <- safeApply(ctx, item, fn)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	i := 0
	for o := range outcomes {
		i++
		summary.add(o)
		if report != nil {
			report(i, n, o)
		}
	}

	return summary
}

// safeApply converts a panicking worker into an error outcome so a bad
// item cannot take the batch down.
func safeApply[T any](ctx context.Context, item T, fn func(context.Context, T) Outcome) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Status: StatusError, Err: fmt.Errorf("worker panic: %v", r)}
		}
	}()
	return fn(ctx, item)
}
