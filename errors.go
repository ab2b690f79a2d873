package partition

import "errors"

const Namespace = "partition"

var (
	ErrInvalidConfig     = errors.New(Namespace + ": invalid configuration")
	ErrInvalidPartition  = errors.New(Namespace + ": partition index out of range")
	ErrPartitionFinished = errors.New(Namespace + ": partition already finished")
	ErrConsumerTaken     = errors.New(Namespace + ": consumer already taken")
	ErrNoNext            = errors.New(Namespace + ": next called without a successful has next")
	ErrPartitionPanicked = errors.New(Namespace + ": partition execution panicked")
)
