package freelist

import (
	"sync"
	"testing"

	"github.com/concurrent-ds/lockfreelist/list"
)

type buffer struct {
	list.Node
	data []byte
}

func TestGetAllocatesWhenEmpty(t *testing.T) {
	p := New(Options[buffer]{
		New: func() *buffer { return &buffer{data: make([]byte, 0, 64)} },
	})

	b := p.Get()
	if b == nil || cap(b.data) != 64 {
		t.Fatalf("Get on empty pool returned %v", b)
	}
	if gets, creates, _ := p.Stats(); gets != 0 || creates != 1 {
		t.Fatalf("stats = gets:%d creates:%d, want gets:0 creates:1", gets, creates)
	}
}

func TestPutThenGetReusesValue(t *testing.T) {
	p := New(Options[buffer]{
		New: func() *buffer { return &buffer{} },
	})

	b1 := p.Get()
	b1.data = append(b1.data, 1, 2, 3)
	p.Put(b1)

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	b2 := p.Get()
	if b2 != b1 {
		t.Fatalf("Get after Put returned a different value")
	}
	if p.Len() != 0 {
		t.Fatalf("Len() after reuse = %d, want 0", p.Len())
	}
}

func TestOnGetAndOnPutHooksRun(t *testing.T) {
	var gotReset, gotPrepared bool
	p := New(Options[buffer]{
		New:   func() *buffer { return &buffer{} },
		OnGet: func(b *buffer) { gotPrepared = true },
		OnPut: func(b *buffer) { gotReset = true; b.data = nil },
	})

	b := p.Get()
	if !gotPrepared {
		t.Fatalf("OnGet hook did not run")
	}
	b.data = []byte{9}
	p.Put(b)
	if !gotReset {
		t.Fatalf("OnPut hook did not run")
	}
}

func TestConcurrentGetPutNeverDuplicatesAValue(t *testing.T) {
	const workers = 8
	const rounds = 500

	p := New(Options[buffer]{
		New: func() *buffer { return &buffer{} },
	})
	for i := 0; i < workers; i++ {
		p.Put(&buffer{})
	}

	seen := make(chan *buffer, workers*rounds*2)
	var inUse sync.Map
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				b := p.Get()
				if _, dup := inUse.LoadOrStore(b, struct{}{}); dup {
					t.Errorf("Get handed out %p while another caller still held it", b)
				}
				seen <- b
				inUse.Delete(b)
				p.Put(b)
			}
		}()
	}
	wg.Wait()
	close(seen)

	// Every Get above must also have been recorded exactly once.
	count := 0
	for range seen {
		count++
	}
	if count != workers*rounds {
		t.Fatalf("count = %d, want %d", count, workers*rounds)
	}
}
