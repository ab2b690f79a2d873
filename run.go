package partition

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Part is the body of one partition. It reports moves through r as it finds
// them and returns its final value (e.g., the number of calculations it made).
// A returned error is captured and surfaced to the consumer in delivery order.
type Part[M any] func(ctx context.Context, r *Reporter[M]) (int64, error)

// Result summarizes a completed Run.
type Result struct {
	// Moves is the number of moves passed to apply.
	Moves int
	// PartsCalculationCount is the sum of the values returned by all parts.
	PartsCalculationCount int64
}

// Run executes every part concurrently and applies the merged move stream on
// the calling goroutine, which acts as the single consumer.
//
// Semantics:
//   - Each part gets its own partition. Its moves are coalesced: apply only
//     sees the latest move a part reported since the previous delivery.
//   - WithPartThreadLimit(n) caps how many parts run at once; the rest start as
//     running parts return.
//   - A part error or panic, an apply error, or ctx cancellation stops the run:
//     the parts' context is canceled, all started parts are awaited and the
//     error is returned. Part failures are *PartitionError values.
//   - Without failures Run returns after every part returned and every
//     delivered move was applied.
func Run[M any](ctx context.Context, parts []Part[M], apply func(M) error, opts ...Option) (Result, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return Result{}, err
	}

	q, err := New[M](len(parts), WithMetrics(cfg.Metrics))
	if err != nil {
		return Result{}, err
	}
	stream := q.Consumer()

	partsCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := new(errgroup.Group)
	if cfg.PartThreadLimit > 0 {
		g.SetLimit(cfg.PartThreadLimit)
	}

	// g.Go blocks while the limit is reached, so parts are launched off the
	// consumer goroutine.
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, part := range parts {
			g.Go(func() error {
				runPart(partsCtx, q, i, part)
				return nil
			})
		}
	}()

	res, err := consume(ctx, stream, apply)
	if err != nil {
		cancel()
	}

	<-launched
	_ = g.Wait() // parts never return errors; failures go through the queue

	res.PartsCalculationCount = q.PartsCalculationCount()
	return res, err
}

// consume drains stream into apply until exhaustion or the first error.
func consume[M any](ctx context.Context, stream *Stream[M], apply func(M) error) (Result, error) {
	var res Result
	for m, err := range stream.All(ctx) {
		if err != nil {
			return res, err
		}
		if err := apply(m); err != nil {
			return res, err
		}
		res.Moves++
	}
	return res, nil
}

// runPart executes one part and records its outcome in q. Panics are recovered
// and recorded as ErrPartitionPanicked failures.
func runPart[M any](ctx context.Context, q *Queue[M], partition int, part Part[M]) {
	if err := ctx.Err(); err != nil {
		q.AddException(partition, err)
		return
	}

	var (
		finalValue int64
		err        error
	)
	func() {
		defer func() {
			if ePanic := recover(); ePanic != nil {
				err = fmt.Errorf("%w: %v", ErrPartitionPanicked, ePanic)
			}
		}()
		finalValue, err = part(ctx, NewReporter(q, partition))
	}()

	if err != nil {
		q.AddException(partition, err)
		return
	}
	q.AddFinish(partition, finalValue)
}
