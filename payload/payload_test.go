package payload

import (
	"testing"
	"time"

	"github.com/concurrent-ds/lockfreelist/list"
)

func TestFindLocatesValue(t *testing.T) {
	l := list.New()
	for _, v := range []int{1, 2, 3} {
		n := NewIntNode(v)
		if err := l.PushBack(&n.Node); err != nil {
			t.Fatalf("PushBack: %v", err)
		}
	}

	found := Find(l, 2)
	if found == nil || found.Value != 2 {
		t.Fatalf("Find(2) = %v", found)
	}
	if Find(l, 99) != nil {
		t.Fatalf("Find(99) found a node that does not exist")
	}
}

func TestFindValueIsGenericOverPayloadType(t *testing.T) {
	l := list.New()
	for _, v := range []int{10, 20, 30} {
		n := NewTimestampNode(v)
		if err := l.PushBack(&n.Node); err != nil {
			t.Fatalf("PushBack: %v", err)
		}
	}

	found := FindValue(l, AsTimestampNode, 20)
	if found == nil || AsTimestampNode(found).Value != 20 {
		t.Fatalf("FindValue(20) = %v", found)
	}
	if FindValue(l, AsTimestampNode, 99) != nil {
		t.Fatalf("FindValue(99) found a node that does not exist")
	}
}

func TestTimestampNodeAccessAndAge(t *testing.T) {
	n := NewTimestampNode(7)
	if n.AccessCount() != 0 {
		t.Fatalf("fresh node access count = %d, want 0", n.AccessCount())
	}
	n.RecordAccess()
	n.RecordAccess()
	if n.AccessCount() != 2 {
		t.Fatalf("access count = %d, want 2", n.AccessCount())
	}
	n.ResetAccessCount()
	if n.AccessCount() != 0 {
		t.Fatalf("access count after reset = %d, want 0", n.AccessCount())
	}

	if n.IsOlderThan(time.Hour) {
		t.Fatalf("brand new node reported older than an hour")
	}
}

func TestFindOldest(t *testing.T) {
	if FindOldest(nil) != nil {
		t.Fatalf("FindOldest(nil) != nil")
	}

	a := NewTimestampNode(1)
	time.Sleep(time.Millisecond)
	b := NewTimestampNode(2)

	if got := FindOldest([]*TimestampNode{b, a}); got != a {
		t.Fatalf("FindOldest returned the younger node")
	}
}
