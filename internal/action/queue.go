package action

import "sync"

// Queue is an unbounded FIFO of actions. Any goroutine may Push; a single
// consumer drains it with Pop.
type Queue struct {
	mu      sync.Mutex
	items   []Action
	pending chan struct{}
}

func NewQueue() *Queue {
	return &Queue{pending: make(chan struct{}, 1)}
}

// Push appends a to the queue. It never blocks.
func (q *Queue) Push(a Action) {
	if a == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()

	select {
	case q.pending <- struct{}{}:
	default:
	}
}

// Pop removes the oldest action. ok is false when the queue is empty.
func (q *Queue) Pop() (a Action, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	a = q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return a, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Wait returns a channel that receives after a Push. A receive does not
// guarantee the queue is still non-empty; drain with Pop until it fails.
func (q *Queue) Wait() <-chan struct{} {
	return q.pending
}
