package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/concurrent-ds/lockfreelist/freelist"
	"github.com/concurrent-ds/lockfreelist/internal/metrics"
	"github.com/concurrent-ds/lockfreelist/lru"
	"github.com/concurrent-ds/lockfreelist/payload"
	"github.com/concurrent-ds/lockfreelist/subscriber"
)

type noopSubscriber string

func (s noopSubscriber) ID() string                             { return string(s) }
func (s noopSubscriber) Receive(channel string, message []byte) {}

// serveMetricsCmd seeds an lru.LRU, a freelist.Pool, a subscriber.Table
// and a metrics.CountedList with a small synthetic workload, registers
// their collectors on a Prometheus registry, and serves it at /metrics
// until the process is stopped.
func serveMetricsCmd() *cobra.Command {
	var listen string
	var n int
	var lruCapacity int

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Populate the LRU/free-list/subscriber/list components and expose their Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				applyIntDefault(cmd, "n", &n, cfg.Bench.N)
				applyIntDefault(cmd, "lru-capacity", &lruCapacity, cfg.LRU.Capacity)
				if !cmd.Flags().Changed("listen") {
					listen = cfg.Metrics.Listen
				}
			}

			cache, err := lru.New(lruCapacity)
			if err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				cache.Add(fmt.Sprintf("k%d", i), i)
			}

			pool := freelist.New(freelist.Options[payload.IntNode]{
				New: func() *payload.IntNode { return payload.NewIntNode(0) },
			})
			held := make([]*payload.IntNode, 0, n)
			for i := 0; i < n; i++ {
				held = append(held, pool.Get())
			}
			for _, v := range held {
				pool.Put(v)
			}

			table := subscriber.NewTable()
			for i := 0; i < n; i++ {
				table.Subscribe("bench", noopSubscriber(fmt.Sprintf("sub%d", i)))
			}

			counted := metrics.NewCountedList()
			for i := 0; i < n; i++ {
				node := payload.NewIntNode(i)
				if err := counted.PushFront(&node.Node); err != nil {
					return err
				}
			}
			for it := counted.Begin(); ; {
				v, err := it.Value()
				if err != nil {
					break
				}
				next := it.Next()
				if err := counted.Remove(v); err != nil {
					return err
				}
				it = next
			}

			reg := metrics.Registry(
				append(append(
					metrics.LRUCollectors(cache.Len),
					metrics.FreeListCollectors(pool.Stats, pool.Len)...),
					metrics.SubscriberCollectors(func() int { return len(table.Channels()) })...)...,
			)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			fmt.Printf("serve-metrics: listening on %s, serving /metrics\n", listen)
			return http.ListenAndServe(listen, mux)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":9090", "address to serve /metrics on")
	cmd.Flags().IntVar(&n, "n", 1000, "size of the synthetic workload seeded into each component")
	cmd.Flags().IntVar(&lruCapacity, "lru-capacity", 256, "capacity of the seeded LRU cache")
	return cmd
}
