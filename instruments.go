package partition

import "github.com/ygrebnov/partition/metrics"

// Instrument names recorded through the configured metrics.Provider.
const (
	MetricMovesAdded         = "partition_queue_moves_added_total"
	MetricMovesCoalesced     = "partition_queue_moves_coalesced_total"
	MetricMovesDelivered     = "partition_queue_moves_delivered_total"
	MetricPartitionsFinished = "partition_queue_partitions_finished_total"
	MetricPartitionsFailed   = "partition_queue_partitions_failed_total"
	MetricArmedPartitions    = "partition_queue_armed_partitions"
	MetricConsumerWait       = "partition_queue_consumer_wait_seconds"
)

type instruments struct {
	added     metrics.Counter
	coalesced metrics.Counter
	delivered metrics.Counter
	finished  metrics.Counter
	failed    metrics.Counter
	armed     metrics.UpDownCounter
	wait      metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		added: p.Counter(MetricMovesAdded,
			metrics.WithDescription("moves reported by partitions"), metrics.WithUnit("1")),
		coalesced: p.Counter(MetricMovesCoalesced,
			metrics.WithDescription("undelivered moves overwritten by a newer move"), metrics.WithUnit("1")),
		delivered: p.Counter(MetricMovesDelivered,
			metrics.WithDescription("moves handed to the consumer"), metrics.WithUnit("1")),
		finished: p.Counter(MetricPartitionsFinished,
			metrics.WithDescription("partitions that reported completion"), metrics.WithUnit("1")),
		failed: p.Counter(MetricPartitionsFailed,
			metrics.WithDescription("partitions that reported a failure"), metrics.WithUnit("1")),
		armed: p.UpDownCounter(MetricArmedPartitions,
			metrics.WithDescription("partitions holding undelivered data"), metrics.WithUnit("1")),
		wait: p.Histogram(MetricConsumerWait,
			metrics.WithDescription("time the consumer spent blocked waiting for data"), metrics.WithUnit("seconds")),
	}
}
