package partition

import (
	"errors"
	"fmt"
)

// PartitionMetaError exposes the partition a propagated failure originated from.
type PartitionMetaError interface {
	error
	Unwrap() error
	Partition() int
}

// PartitionError is returned by the consumer when a partition failure reaches
// the front of the delivery order. The original cause is kept as-is.
type PartitionError struct {
	err       error
	partition int
}

func newPartitionError(err error, partition int) error {
	if err == nil {
		return nil
	}
	return &PartitionError{err: err, partition: partition}
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("%s: partition %d failed: %v", Namespace, e.partition, e.err)
}

func (e *PartitionError) Unwrap() error { return e.err }

// Partition returns the index of the failed partition.
func (e *PartitionError) Partition() int { return e.partition }

func (e *PartitionError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "partition(index=%d): %+v", e.partition, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractPartition returns the failed partition index from err if present.
func ExtractPartition(err error) (int, bool) {
	var pme PartitionMetaError
	if errors.As(err, &pme) {
		return pme.Partition(), true
	}
	return 0, false
}
