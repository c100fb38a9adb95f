package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/concurrent-ds/lockfreelist/payload"
)

func TestCountedListIncrementsPushAndRemoveTotals(t *testing.T) {
	beforePush := testutil.ToFloat64(PushTotal)
	beforeRemove := testutil.ToFloat64(RemoveTotal)

	l := NewCountedList()
	n := payload.NewIntNode(1)
	if err := l.PushFront(&n.Node); err != nil {
		t.Fatalf("PushFront: %v", err)
	}
	if err := l.Remove(&n.Node); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if got := testutil.ToFloat64(PushTotal) - beforePush; got != 1 {
		t.Fatalf("list_push_total incremented by %v, want 1", got)
	}
	if got := testutil.ToFloat64(RemoveTotal) - beforeRemove; got != 1 {
		t.Fatalf("list_remove_total incremented by %v, want 1", got)
	}
}

func TestCountedListDoesNotCountFailedRemove(t *testing.T) {
	beforeRemove := testutil.ToFloat64(RemoveTotal)

	l := NewCountedList()
	n := payload.NewIntNode(1)
	if err := l.Remove(&n.Node); err == nil {
		t.Fatalf("Remove on a never-inserted node returned nil, want ErrNotMember")
	}

	if got := testutil.ToFloat64(RemoveTotal) - beforeRemove; got != 0 {
		t.Fatalf("list_remove_total incremented by %v on a failed Remove, want 0", got)
	}
}
