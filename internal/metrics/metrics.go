// Package metrics exposes Prometheus collectors for the components
// built on the lock-free list. Core package list stays dependency-free;
// these gauges/counters observe lru, freelist and subscriber from the
// outside via the small set of stats/Len/Count accessors those packages
// already expose, and CountedList instruments list.List's mutators
// directly for callers (cmd/bench) that want push/remove counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/concurrent-ds/lockfreelist/list"
)

// PushTotal counts every successful PushFront/PushBack/InsertAfter
// through a CountedList.
var PushTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "list_push_total",
	Help: "Total successful inserts into a lock-free list observed through a CountedList.",
})

// RemoveTotal counts every successful Remove through a CountedList.
var RemoveTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "list_remove_total",
	Help: "Total successful removals from a lock-free list observed through a CountedList.",
})

// CountedList wraps a *list.List, incrementing PushTotal/RemoveTotal
// around each call that actually linearizes a structural change. A
// failed call (nil node, ErrNotMember, a rejected InsertAfter target)
// does not count.
type CountedList struct {
	*list.List
}

// NewCountedList returns an empty CountedList.
func NewCountedList() *CountedList {
	return &CountedList{List: list.New()}
}

func (c *CountedList) PushFront(n *list.Node) error {
	err := c.List.PushFront(n)
	if err == nil {
		PushTotal.Inc()
	}
	return err
}

func (c *CountedList) PushBack(n *list.Node) error {
	err := c.List.PushBack(n)
	if err == nil {
		PushTotal.Inc()
	}
	return err
}

func (c *CountedList) InsertAfter(target, n *list.Node) (bool, error) {
	ok, err := c.List.InsertAfter(target, n)
	if err == nil && ok {
		PushTotal.Inc()
	}
	return ok, err
}

func (c *CountedList) Remove(n *list.Node) error {
	err := c.List.Remove(n)
	if err == nil {
		RemoveTotal.Inc()
	}
	return err
}

// Registry returns a fresh Prometheus registry with PushTotal,
// RemoveTotal, and the given component collectors all registered.
func Registry(collectors ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(PushTotal, RemoveTotal)
	reg.MustRegister(collectors...)
	return reg
}

// LRUCollectors returns collectors tracking an lru.LRU's current size.
// lenFn should be the cache's Len method.
func LRUCollectors(lenFn func() int) []prometheus.Collector {
	size := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "lockfreelist",
		Subsystem: "lru",
		Name:      "entries",
		Help:      "Current number of entries held by the LRU cache.",
	}, func() float64 { return float64(lenFn()) })
	return []prometheus.Collector{size}
}

// FreeListCollectors returns collectors tracking a freelist.Pool's
// lifetime Get/Put/allocate counts and current idle length. statsFn
// should be the pool's Stats method and lenFn its Len method.
func FreeListCollectors(statsFn func() (gets, creates, puts uint64), lenFn func() int) []prometheus.Collector {
	gets := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "lockfreelist",
		Subsystem: "freelist",
		Name:      "gets_total",
		Help:      "Total Get calls served from the free list without allocating.",
	}, func() float64 { g, _, _ := statsFn(); return float64(g) })
	creates := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "lockfreelist",
		Subsystem: "freelist",
		Name:      "creates_total",
		Help:      "Total Get calls that found the free list empty and allocated.",
	}, func() float64 { _, c, _ := statsFn(); return float64(c) })
	puts := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "lockfreelist",
		Subsystem: "freelist",
		Name:      "puts_total",
		Help:      "Total values returned to the free list.",
	}, func() float64 { _, _, p := statsFn(); return float64(p) })
	idle := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "lockfreelist",
		Subsystem: "freelist",
		Name:      "idle",
		Help:      "Current number of values sitting in the free list.",
	}, func() float64 { return float64(lenFn()) })
	return []prometheus.Collector{gets, creates, puts, idle}
}

// SubscriberCollectors returns a collector tracking how many channels
// currently have at least one subscriber. channelCountFn should return
// len(table.Channels()).
func SubscriberCollectors(channelCountFn func() int) []prometheus.Collector {
	channels := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "lockfreelist",
		Subsystem: "subscriber",
		Name:      "channels",
		Help:      "Current number of channels with at least one subscriber.",
	}, func() float64 { return float64(channelCountFn()) })
	return []prometheus.Collector{channels}
}
