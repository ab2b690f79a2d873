package partition

// slot is the per-partition state of a Queue. All fields are guarded by Queue.mu.
type slot[M any] struct {
	// pending holds the latest undelivered move; hasPending tells whether it is set.
	pending    M
	hasPending bool

	// armed is true iff the partition index currently sits in Queue.order.
	armed bool

	// finished flips to true exactly once; finalValue is meaningful only after that.
	finished   bool
	finalValue int64

	// err is the first failure reported for the partition. It is never cleared
	// and takes priority over pending at delivery time.
	err error
}

// take returns the pending move and clears it.
func (s *slot[M]) take() M {
	m := s.pending
	var zero M
	s.pending = zero
	s.hasPending = false
	return m
}
