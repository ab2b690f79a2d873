package partition

import (
	"strconv"
	"sync"

	"github.com/ygrebnov/errorc"
)

// Queue merges moves reported by a fixed number of concurrently running
// partitions into one ordered stream for a single consumer.
//
// Producer semantics:
//   - AddMove overwrites the partition's undelivered move. The first move since
//     the partition was last drained reserves its position in the delivery order;
//     later overwrites keep that position.
//   - AddFinish records completion. A pending move is still delivered.
//   - AddException records the first failure of a partition and reserves a
//     delivery position if the partition has none. Once recorded, the failure
//     supersedes every move of that partition.
//
// Producer methods are safe for concurrent use and never block on the consumer.
// Calls that break the contract (an index out of range, a call after AddFinish)
// panic.
type Queue[M any] struct {
	// noCopy prevents accidental copying of the queue.
	//go:nocopy
	nc noCopy

	mu   sync.Mutex
	cond *sync.Cond

	slots         []slot[M]
	order         indexRing
	finishedCount int

	consumerTaken bool

	metrics instruments
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Queue for the given number of partitions.
// Zero partitions is valid: the stream is exhausted from the start.
func New[M any](partitions int, opts ...Option) (*Queue[M], error) {
	if partitions < 0 {
		return nil, errorc.With(
			ErrInvalidConfig,
			errorc.String("partitions", strconv.Itoa(partitions)),
		)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	q := &Queue[M]{
		slots:   make([]slot[M], partitions),
		order:   newIndexRing(partitions),
		metrics: newInstruments(cfg.Metrics),
	}
	q.cond = sync.NewCond(&q.mu)
	return q, nil
}

// Partitions returns the number of partitions the queue was created for.
func (q *Queue[M]) Partitions() int { return len(q.slots) }

// AddMove stores move as the latest undelivered move of partition and wakes the consumer.
// A move reported after AddException for the same partition is never delivered.
func (q *Queue[M]) AddMove(partition int, move M) {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := q.producerSlot(partition)
	if s.hasPending {
		q.metrics.coalesced.Add(1)
	}
	s.pending = move
	s.hasPending = true
	q.metrics.added.Add(1)

	q.arm(partition, s)
	q.cond.Broadcast()
}

// AddFinish marks partition as finished with finalValue (e.g., its calculation count).
// It must be called at most once per partition.
func (q *Queue[M]) AddFinish(partition int, finalValue int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := q.producerSlot(partition)
	s.finished = true
	s.finalValue = finalValue
	q.finishedCount++
	q.metrics.finished.Add(1)

	q.cond.Broadcast()
}

// AddException records err as the failure of partition. Only the first failure
// is kept. It surfaces to the consumer, wrapped in a *PartitionError, once the
// partition reaches the front of the delivery order.
func (q *Queue[M]) AddException(partition int, err error) {
	if err == nil {
		panic(errorc.With(ErrInvalidConfig,
			errorc.String("", "AddException requires a non-nil error"),
			errorc.String("partition", strconv.Itoa(partition)),
		))
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	s := q.producerSlot(partition)
	if s.err != nil {
		return
	}
	s.err = err
	q.metrics.failed.Add(1)

	q.arm(partition, s)
	q.cond.Broadcast()
}

// PartsCalculationCount returns the sum of the final values reported by finished partitions.
func (q *Queue[M]) PartsCalculationCount() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	var total int64
	for i := range q.slots {
		if q.slots[i].finished {
			total += q.slots[i].finalValue
		}
	}
	return total
}

// Consumer returns the single-use blocking consumer handle of the queue.
// It panics if called more than once.
func (q *Queue[M]) Consumer() *Stream[M] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.consumerTaken {
		panic(ErrConsumerTaken)
	}
	q.consumerTaken = true
	return &Stream[M]{q: q}
}

// producerSlot validates a producer call and returns the target slot. Requires q.mu.
func (q *Queue[M]) producerSlot(partition int) *slot[M] {
	if partition < 0 || partition >= len(q.slots) {
		panic(errorc.With(ErrInvalidPartition,
			errorc.String("partition", strconv.Itoa(partition)),
			errorc.String("partitions", strconv.Itoa(len(q.slots))),
		))
	}
	s := &q.slots[partition]
	if s.finished {
		panic(errorc.With(ErrPartitionFinished, errorc.String("partition", strconv.Itoa(partition))))
	}
	return s
}

// arm appends partition to the delivery order unless it already holds a position. Requires q.mu.
func (q *Queue[M]) arm(partition int, s *slot[M]) {
	if s.armed {
		return
	}
	s.armed = true
	q.order.push(partition)
	q.metrics.armed.Add(1)
}

// popFront removes the front partition from the delivery order and disarms it. Requires q.mu.
func (q *Queue[M]) popFront() (int, *slot[M]) {
	partition := q.order.pop()
	s := &q.slots[partition]
	s.armed = false
	q.metrics.armed.Add(-1)
	return partition, s
}

// exhausted reports whether every partition finished and nothing is left to deliver. Requires q.mu.
func (q *Queue[M]) exhausted() bool {
	return q.finishedCount == len(q.slots) && q.order.len() == 0
}
