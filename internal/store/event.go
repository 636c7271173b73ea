package store

import "sync/atomic"

// sequenceCounter hands out the monotonic sequence shared by attempts and
// LLM events, so the two can be ordered against each other.
type sequenceCounter struct {
	n atomic.Int64
}

// Next returns the next sequence number, starting at 1.
func (sc *sequenceCounter) Next() int64 {
	return sc.n.Add(1)
}
