package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/concurrent-ds/lockfreelist/list"
	"github.com/concurrent-ds/lockfreelist/payload"
)

// mixedCmd is the Go counterpart of BM_MixedOperations: each iteration
// either pushes a new node (50% of the time) or removes the current
// head, single-threaded.
func mixedCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "mixed",
		Short: "Benchmark an interleaved push/remove workload on a single goroutine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				applyIntDefault(cmd, "n", &n, cfg.Bench.N)
			}
			l := list.New()
			rng := newRand()

			start := time.Now()
			for i := 0; i < n; i++ {
				if rng.Intn(2) == 0 {
					node := payload.NewIntNode(i)
					if err := l.PushFront(&node.Node); err != nil {
						panic(err)
					}
				} else if head, err := l.Begin().Value(); err == nil {
					_ = l.Remove(head)
				}
			}
			elapsed := time.Since(start)

			fmt.Printf("mixed: %d ops in %s (%.0f ops/sec)\n", n, elapsed, float64(n)/elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 8192, "total operations to perform")
	return cmd
}
