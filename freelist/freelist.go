// Package freelist is a generic object pool, the same shape as a
// sync.Pool wrapper, but backed by the lock-free list: returned objects
// sit in a list instead of a GC-visible free bag, which also makes the
// pool's contents (and their age, via payload.TimestampNode) walkable
// for diagnostics.
package freelist

import (
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/concurrent-ds/lockfreelist/internal/logging"
	"github.com/concurrent-ds/lockfreelist/list"
)

func atomicAdd(counter *uint64) uint64 {
	return atomic.AddUint64(counter, 1)
}

// Pool is a typed free list of *T values. T must embed list.Node as its
// first field; Pool recovers the owning T from the *list.Node it gets
// back the same way package payload does.
type Pool[T any] struct {
	free    *list.List
	newFn   func() *T
	onGet   func(*T)
	onPut   func(*T)
	gets    uint64
	puts    uint64
	creates uint64
}

// Options configures optional hooks run around Get and Put.
type Options[T any] struct {
	New   func() *T // required
	OnGet func(*T)  // optional, run after a value is returned from Get
	OnPut func(*T)  // optional, run before a value is stored by Put
}

// New returns an empty pool. opts.New must be non-nil; it is called
// whenever Get finds the free list empty.
func New[T any](opts Options[T]) *Pool[T] {
	if opts.New == nil {
		panic("freelist: Options.New must not be nil")
	}
	return &Pool[T]{
		free:  list.New(),
		newFn: opts.New,
		onGet: opts.OnGet,
		onPut: opts.OnPut,
	}
}

func asT[T any](n *list.Node) *T {
	return (*T)(unsafe.Pointer(n))
}

func nodeOf[T any](v *T) *list.Node {
	return (*list.Node)(unsafe.Pointer(v))
}

// Get returns a value from the pool's free list, or a freshly
// constructed one if the free list is currently empty.
func (p *Pool[T]) Get() *T {
	for {
		it := p.free.Begin()
		n, err := it.Value()
		if err != nil {
			v := p.newFn()
			creates := atomicAdd(&p.creates)
			logging.L().Debug("freelist: free list empty, allocated", zap.Uint64("creates", creates))
			if p.onGet != nil {
				p.onGet(v)
			}
			return v
		}

		// Remove returns ErrNotMember, not nil, when a racing Get already
		// took n out from under us, so only the caller whose Remove call
		// actually linearized the detach reaches past this point; a
		// second racing Get retries from Begin rather than handing out
		// the same value twice.
		if err := p.free.Remove(n); err != nil {
			continue
		}

		v := asT[T](n)
		if p.onGet != nil {
			p.onGet(v)
		}
		atomicAdd(&p.gets)
		return v
	}
}

// Put returns v to the pool's free list for reuse by a later Get.
func (p *Pool[T]) Put(v *T) {
	if p.onPut != nil {
		p.onPut(v)
	}
	n := nodeOf(v)
	n.Reset()
	if err := p.free.PushFront(n); err != nil {
		panic(err)
	}
	atomicAdd(&p.puts)
}

// Len returns the number of values currently sitting in the free list.
func (p *Pool[T]) Len() int {
	n := 0
	for it := p.free.Begin(); ; it = it.Next() {
		if _, err := it.Value(); err != nil {
			break
		}
		n++
	}
	return n
}

// Stats returns lifetime counters: how many Get calls were served from
// the free list vs required a fresh allocation, and how many values have
// been returned via Put.
func (p *Pool[T]) Stats() (gets, creates, puts uint64) {
	return atomic.LoadUint64(&p.gets), atomic.LoadUint64(&p.creates), atomic.LoadUint64(&p.puts)
}
