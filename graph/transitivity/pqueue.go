package transitivity

import "container/heap"

// rangeQueue is a min-priority queue, keyed by IRange.Lo, over arena
// indices rather than over the intervals themselves — the arena already
// owns the values, the queue only orders a view over it. This is the Go
// counterpart of the original's java.util.PriorityQueue<IRange>.
type rangeQueue struct {
	idx   []int32
	arena *[]IRange
}

func newRangeQueue(arena *[]IRange) *rangeQueue {
	return &rangeQueue{arena: arena}
}

func (q *rangeQueue) reset() { q.idx = q.idx[:0] }

func (q *rangeQueue) Len() int { return len(q.idx) }

func (q *rangeQueue) Less(i, j int) bool {
	a := (*q.arena)[q.idx[i]]
	b := (*q.arena)[q.idx[j]]
	return compareLo(a, b) < 0
}

func (q *rangeQueue) Swap(i, j int) { q.idx[i], q.idx[j] = q.idx[j], q.idx[i] }

func (q *rangeQueue) Push(x any) { q.idx = append(q.idx, x.(int32)) }

func (q *rangeQueue) Pop() any {
	old := q.idx
	n := len(old)
	v := old[n-1]
	q.idx = old[:n-1]
	return v
}

func (q *rangeQueue) pushIdx(i int32) { heap.Push(q, i) }

func (q *rangeQueue) popIdx() (int32, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	return heap.Pop(q).(int32), true
}
