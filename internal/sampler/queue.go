package sampler

import "math/rand/v2"

// indexQueue is a fixed-capacity ring of indices. Rotation is explicit
// (head cursor + size) so reshuffles are fully determined by the rand source.
type indexQueue struct {
	buf  []int
	head int
	size int
}

func newIndexQueue(capacity int) *indexQueue {
	return &indexQueue{buf: make([]int, capacity)}
}

func (q *indexQueue) len() int { return q.size }

// pop removes the front index.
func (q *indexQueue) pop() (int, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// push appends v at the back. Pushing into a full queue is a no-op; every
// caller pushes back an index it just popped.
func (q *indexQueue) push(v int) {
	if q.size == len(q.buf) {
		return
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

// refill replaces the contents with a fresh Fisher–Yates permutation of
// 0..cap-1.
func (q *indexQueue) refill(r *rand.Rand) {
	for i := range q.buf {
		q.buf[i] = i
	}
	r.Shuffle(len(q.buf), func(i, j int) {
		q.buf[i], q.buf[j] = q.buf[j], q.buf[i]
	})
	q.head = 0
	q.size = len(q.buf)
}

// recentEntry is one slot of the recency ring.
type recentEntry struct {
	id  string
	seq uint64
}

// recency is a bounded FIFO of task ids with O(1) membership. Each push gets
// a sequence number so membership can also be asked for a narrower window
// than the FIFO capacity.
type recency struct {
	entries []recentEntry
	head    int
	size    int
	seq     uint64
	last    map[string]uint64
}

func newRecency(capacity int) *recency {
	return &recency{
		entries: make([]recentEntry, capacity),
		last:    make(map[string]uint64, capacity),
	}
}

func (r *recency) capacity() int { return len(r.entries) }

// push records id as the most recent entry, evicting the oldest when full.
func (r *recency) push(id string) {
	if len(r.entries) == 0 {
		return
	}
	if r.size == len(r.entries) {
		old := r.entries[r.head]
		if r.last[old.id] == old.seq {
			delete(r.last, old.id)
		}
		r.head = (r.head + 1) % len(r.entries)
		r.size--
	}

	r.seq++
	r.entries[(r.head+r.size)%len(r.entries)] = recentEntry{id: id, seq: r.seq}
	r.size++
	r.last[id] = r.seq
}

// contains reports whether id is among the last window pushes.
func (r *recency) contains(id string, window int) bool {
	if window <= 0 {
		return false
	}
	s, ok := r.last[id]
	if !ok {
		return false
	}
	return r.seq-s < uint64(window)
}

// ids returns the entries oldest first.
func (r *recency) ids() []string {
	out := make([]string, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.entries[(r.head+i)%len(r.entries)].id)
	}
	return out
}

func (r *recency) reset() {
	r.head = 0
	r.size = 0
	r.seq = 0
	clear(r.last)
}
