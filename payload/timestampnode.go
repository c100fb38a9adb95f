package payload

import (
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/concurrent-ds/lockfreelist/list"
)

// TimestampNode is a list member carrying an int value alongside a
// creation timestamp and an access counter, for the cache and eviction
// components built on top of package list. The access counter is
// updated with sync/atomic increments: it is a hint for eviction policy,
// not a count kept in step with list operations.
type TimestampNode struct {
	list.Node
	Value       int
	timestamp   time.Time
	accessCount uint64
}

// NewTimestampNode returns a fresh, unlinked TimestampNode stamped with
// the current time.
func NewTimestampNode(v int) *TimestampNode {
	return &TimestampNode{Value: v, timestamp: time.Now()}
}

// AsTimestampNode recovers the TimestampNode that owns n, the same way
// AsIntNode does for IntNode.
func AsTimestampNode(n *list.Node) *TimestampNode {
	return (*TimestampNode)(unsafe.Pointer(n))
}

// RecordAccess bumps the access counter. Safe to call concurrently with
// any list operation on the node.
func (t *TimestampNode) RecordAccess() {
	atomic.AddUint64(&t.accessCount, 1)
}

// AccessCount returns the number of recorded accesses.
func (t *TimestampNode) AccessCount() uint64 {
	return atomic.LoadUint64(&t.accessCount)
}

// ResetAccessCount zeroes the access counter.
func (t *TimestampNode) ResetAccessCount() {
	atomic.StoreUint64(&t.accessCount, 0)
}

// UpdateTimestamp stamps the node with the current time, for instance
// after a cache refresh that should reset its age.
func (t *TimestampNode) UpdateTimestamp() {
	t.timestamp = time.Now()
}

// Age returns how long ago the node was created or last stamped.
func (t *TimestampNode) Age() time.Duration {
	return time.Since(t.timestamp)
}

// AgeSeconds is Age in fractional seconds, for metrics export.
func (t *TimestampNode) AgeSeconds() float64 {
	return t.Age().Seconds()
}

// IsOlderThan reports whether the node's age exceeds d.
func (t *TimestampNode) IsOlderThan(d time.Duration) bool {
	return t.Age() > d
}

// ValueOf satisfies Payload.
func (t *TimestampNode) ValueOf() int {
	return t.Value
}

// FindOldest returns the TimestampNode among the given nodes with the
// smallest timestamp, or nil if nodes is empty.
func FindOldest(nodes []*TimestampNode) *TimestampNode {
	if len(nodes) == 0 {
		return nil
	}
	oldest := nodes[0]
	for _, n := range nodes[1:] {
		if n.timestamp.Before(oldest.timestamp) {
			oldest = n
		}
	}
	return oldest
}
