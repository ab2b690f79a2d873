package partition

// Reporter is the producer handle of one partition. It is handed to a Part by
// Run so a partition can only report moves for itself.
type Reporter[M any] struct {
	q         *Queue[M]
	partition int
}

// NewReporter binds q and partition. It panics if partition is out of range.
func NewReporter[M any](q *Queue[M], partition int) *Reporter[M] {
	if partition < 0 || partition >= q.Partitions() {
		panic(ErrInvalidPartition)
	}
	return &Reporter[M]{q: q, partition: partition}
}

// Partition returns the partition index the reporter is bound to.
func (r *Reporter[M]) Partition() int { return r.partition }

// AddMove reports an improving move. It replaces any move not yet delivered.
func (r *Reporter[M]) AddMove(move M) { r.q.AddMove(r.partition, move) }
