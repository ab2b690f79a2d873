package partition

import (
	"context"
	"io"
	"iter"
	"time"
)

// Stream is the blocking consumer handle of a Queue. It must be used by a
// single goroutine.
//
// HasNext decides the next delivery under the queue lock: it either takes the
// front partition's move, reports that every partition finished, or returns the
// front partition's failure. Next then returns the taken move without locking.
// Once a failure has been returned, the stream is terminated and every further
// HasNext/Recv call returns the same error.
type Stream[M any] struct {
	q *Queue[M]

	next  M
	ready bool

	err error
}

// HasNext blocks until a move is available (true), every partition finished
// with nothing left to deliver (false), or a partition failure reaches the
// front of the delivery order (error). It never times out; use HasNextContext
// to bound the wait.
func (s *Stream[M]) HasNext() (bool, error) {
	return s.HasNextContext(context.Background())
}

// HasNextContext is HasNext bounded by ctx. When ctx is done before a decision
// is made, it returns ctx.Err() and the stream stays usable.
func (s *Stream[M]) HasNextContext(ctx context.Context) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.ready {
		return true, nil
	}

	q := s.q
	if ctx.Done() != nil {
		// Wake the waiter on cancellation. Taking the lock orders the broadcast
		// after the waiter's ctx check, so the wakeup cannot be missed.
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	var waitStart time.Time
	defer func() {
		if !waitStart.IsZero() {
			q.metrics.wait.Record(time.Since(waitStart).Seconds())
		}
	}()

	for {
		if q.order.len() > 0 {
			if front := q.order.front(); q.slots[front].err != nil {
				s.err = newPartitionError(q.slots[front].err, front)
				return false, s.err
			}
			_, sl := q.popFront()
			s.next = sl.take()
			s.ready = true
			q.metrics.delivered.Add(1)
			return true, nil
		}
		if q.exhausted() {
			return false, nil
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if waitStart.IsZero() {
			waitStart = time.Now()
		}
		q.cond.Wait()
	}
}

// Next returns the move taken by the preceding successful HasNext.
// It panics if HasNext did not return true since the last Next.
func (s *Stream[M]) Next() M {
	if !s.ready {
		panic(ErrNoNext)
	}
	m := s.next
	var zero M
	s.next = zero
	s.ready = false
	return m
}

// Recv returns the next move. It returns io.EOF once every partition finished
// and all moves were delivered, or the partition failure otherwise.
func (s *Stream[M]) Recv(ctx context.Context) (M, error) {
	ok, err := s.HasNextContext(ctx)
	if err != nil {
		var zero M
		return zero, err
	}
	if !ok {
		var zero M
		return zero, io.EOF
	}
	return s.Next(), nil
}

// All returns an iterator over the remaining moves. A failure (including ctx
// cancellation) is yielded once as the last element.
func (s *Stream[M]) All(ctx context.Context) iter.Seq2[M, error] {
	return func(yield func(M, error) bool) {
		for {
			m, err := s.Recv(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(m, err)
				return
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}
