package priority_queue

import (
	"github.com/pkg/errors"
)

var (
	ErrCapacityExceeded = errors.New("priority queue capacity exceeded")
	ErrEmpty            = errors.New("priority queue is empty")
)

// PriorityQueue is a fixed-capacity binary min-heap ordered by frequency.
// heap[0] is unused so the parent of i is i/2 and its children are 2i and
// 2i+1.
type PriorityQueue[T any] struct {
	heap      []T
	tail      int // num of items currently in heap
	frequency func(T) uint64
}

func New[T any](capacity int, frequency func(T) uint64) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		heap:      make([]T, capacity+1),
		tail:      0,
		frequency: frequency,
	}
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.tail
}

func (pq *PriorityQueue[T]) Cap() int {
	return len(pq.heap) - 1
}

func (pq *PriorityQueue[T]) Insert(item T) error {
	if pq.tail == pq.Cap() {
		return errors.Wrapf(ErrCapacityExceeded, "insert into queue of %d", pq.Cap())
	}

	pq.tail++
	pq.heap[pq.tail] = item

	current := pq.tail
	for current > 1 && pq.less(current, current/2) {
		pq.swap(current, current/2)
		current /= 2
	}
	return nil
}

// RemoveMin takes the item with the smallest frequency out of the queue.
func (pq *PriorityQueue[T]) RemoveMin() (T, error) {
	var zero T
	if pq.tail == 0 {
		return zero, errors.WithStack(ErrEmpty)
	}

	top := pq.heap[1]
	pq.heap[1] = pq.heap[pq.tail]
	pq.heap[pq.tail] = zero
	pq.tail--

	current := 1
	for {
		child := 2 * current
		if child > pq.tail {
			break
		}
		// left child wins ties
		if child+1 <= pq.tail && pq.less(child+1, child) {
			child++
		}
		if !pq.less(child, current) {
			break
		}
		pq.swap(current, child)
		current = child
	}

	return top, nil
}

func (pq *PriorityQueue[T]) less(a, b int) bool {
	return pq.frequency(pq.heap[a]) < pq.frequency(pq.heap[b])
}

func (pq *PriorityQueue[T]) swap(a, b int) {
	pq.heap[a], pq.heap[b] = pq.heap[b], pq.heap[a]
}
