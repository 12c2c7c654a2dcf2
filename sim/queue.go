// Implements the ReadyQueue, which holds processes waiting for the CPU.
// Processes are enqueued on arrival and re-enqueued at the tail after a
// round-robin slice that leaves work remaining.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of indices into a run's process states.
type ReadyQueue struct {
	queue  []int
	queued map[int]bool
}

// NewReadyQueue creates an empty ReadyQueue.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{queued: make(map[int]bool)}
}

// Enqueue adds a process to the back of the queue.
// Panics if the process is already queued: a process may hold at most one slot.
func (rq *ReadyQueue) Enqueue(idx int) {
	if rq.queued[idx] {
		panic(fmt.Sprintf("Enqueue: process index %d already queued", idx))
	}
	rq.queued[idx] = true
	rq.queue = append(rq.queue, idx)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns false if the queue is empty.
func (rq *ReadyQueue) Dequeue() (int, bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	idx := rq.queue[0]
	rq.queue = rq.queue[1:]
	delete(rq.queued, idx)
	return idx, true
}

// Len returns the number of queued processes.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
