package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/concurrent-ds/lockfreelist/list"
	"github.com/concurrent-ds/lockfreelist/payload"
)

// pushFrontCmd is the Go counterpart of BM_PushFront and
// BM_PushFront_MultiThreaded: push n nodes onto a fresh list split
// evenly across threads goroutines and report nodes/sec.
func pushFrontCmd() *cobra.Command {
	var n int
	var threads int

	cmd := &cobra.Command{
		Use:   "push-front",
		Short: "Benchmark concurrent PushFront",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				applyIntDefault(cmd, "n", &n, cfg.Bench.N)
				applyIntDefault(cmd, "threads", &threads, cfg.Bench.Threads)
			}
			if threads < 1 {
				return fmt.Errorf("--threads must be at least 1")
			}
			l := list.New()
			perThread := n / threads

			start := time.Now()
			var wg sync.WaitGroup
			wg.Add(threads)
			for t := 0; t < threads; t++ {
				go func(base int) {
					defer wg.Done()
					for i := 0; i < perThread; i++ {
						node := payload.NewIntNode(base + i)
						if err := l.PushFront(&node.Node); err != nil {
							panic(err)
						}
					}
				}(t * perThread)
			}
			wg.Wait()
			elapsed := time.Since(start)

			total := perThread * threads
			fmt.Printf("push-front: %d nodes across %d goroutines in %s (%.0f nodes/sec)\n",
				total, threads, elapsed, float64(total)/elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 8192, "total nodes to push")
	cmd.Flags().IntVar(&threads, "threads", 1, "number of concurrent goroutines")
	return cmd
}
