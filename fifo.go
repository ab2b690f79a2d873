package partition

// indexRing is a FIFO of partition indices backed by a fixed ring.
// A partition is queued at most once at a time, so capacity equal to the
// number of partitions never overflows.
type indexRing struct {
	buf   []int
	head  int
	count int
}

func newIndexRing(capacity int) indexRing {
	return indexRing{buf: make([]int, capacity)}
}

func (r *indexRing) len() int { return r.count }

func (r *indexRing) push(idx int) {
	if r.count == len(r.buf) {
		panic(Namespace + ": delivery order overflow")
	}
	r.buf[(r.head+r.count)%len(r.buf)] = idx
	r.count++
}

// front returns the oldest index. The ring must not be empty.
func (r *indexRing) front() int { return r.buf[r.head] }

func (r *indexRing) pop() int {
	idx := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return idx
}
