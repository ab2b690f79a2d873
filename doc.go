// Package partition merges results produced by N concurrently running
// partition workers into one ordered, blocking stream for a single consumer.
//
// Queue
// A Queue has one slot per partition and a FIFO of partitions holding
// undelivered data ("armed" partitions):
//   - AddMove(p, m): keep only the latest undelivered move of p. The first
//     move since p was last drained appends p to the delivery order; later
//     moves overwrite the value but keep the position.
//   - AddFinish(p, v): mark p finished with final value v. A pending move of
//     p is still delivered.
//   - AddException(p, err): record the first failure of p. It takes the place
//     of any move of p and surfaces to the consumer when p reaches the front.
//
// Consumer
// Queue.Consumer returns a single-use Stream:
//   - HasNext / HasNextContext block until a move is ready (true), every
//     partition finished and nothing is left (false), or a failure is at the
//     front (error, a *PartitionError wrapping the cause).
//   - Next returns the move decided by the preceding HasNext.
//   - Recv and All offer the same stream as (move, error) pairs, with io.EOF
//     marking the end.
//
// Run
// Run wires a Queue to a set of Part functions executed on goroutines and
// applies the merged stream on the calling goroutine.
//
// Contract violations (a partition index out of range, a producer call after
// AddFinish, a second Consumer, Next without HasNext) panic.
//
// Defaults
//   - Metrics: metrics.NoopProvider
//   - PartThreadLimit: 0 (every part starts right away)
package partition
