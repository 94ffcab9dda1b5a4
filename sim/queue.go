// Implements the Queue, the FIFO frontier of the breadth-first derivation
// search. Nodes are enqueued as they are generated.

package sim

import (
	"fmt"
	"strings"
)

// Queue is a FIFO queue. The zero value is an empty queue.
type Queue[T any] struct {
	items []T
}

// Enqueue adds an item to the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.items = append(q.items, v)
}

// Dequeue removes the item at the front of the queue. It reports false when
// the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Peek returns the front item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range q.items {
		sb.WriteString(fmt.Sprint(v))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
