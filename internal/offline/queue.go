// Package offline holds inspection submissions that failed on
// connectivity, for replay once the database is reachable again.
package offline

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"fleetworks/internal/models"

	"github.com/google/uuid"
)

type Submission struct {
	ID         string            `json:"id"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
	Inspection models.Inspection `json:"inspection"`
}

// Queue is a FIFO of deferred submissions. Safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	entries []Submission
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Enqueue(insp models.Inspection) Submission {
	sub := Submission{
		ID:         uuid.NewString(),
		EnqueuedAt: time.Now(),
		Inspection: insp,
	}
	q.mu.Lock()
	q.entries = append(q.entries, sub)
	q.mu.Unlock()
	return sub
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) Pending() []Submission {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Submission, len(q.entries))
	copy(out, q.entries)
	return out
}

// Replay drains the queue in order, calling save for each submission.
// On the first error the failed submission and everything after it stay
// queued; replayed reports how many made it through.
func (q *Queue) Replay(save func(Submission) error) (replayed int, err error) {
	q.mu.Lock()
	pending := q.entries
	q.entries = nil
	q.mu.Unlock()

	for i, sub := range pending {
		if err = save(sub); err != nil {
			q.mu.Lock()
			q.entries = append(pending[i:], q.entries...)
			q.mu.Unlock()
			return i, err
		}
	}
	return len(pending), nil
}

// IsConnectivityError distinguishes "the database is unreachable" from
// ordinary write failures, so only the former divert to the queue.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "no such host")
}
