package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/concurrent-ds/lockfreelist/list"
	"github.com/concurrent-ds/lockfreelist/payload"
)

// contentionCmd is the Go counterpart of BM_HighContention: several
// goroutines each hammer the same list with a push/remove-head mix.
func contentionCmd() *cobra.Command {
	var threads int
	var opsPerThread int

	cmd := &cobra.Command{
		Use:   "contention",
		Short: "Benchmark many goroutines pushing and removing on one shared list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				applyIntDefault(cmd, "threads", &threads, cfg.Bench.Threads)
			}
			if threads < 1 {
				return fmt.Errorf("--threads must be at least 1")
			}
			l := list.New()

			start := time.Now()
			var wg sync.WaitGroup
			wg.Add(threads)
			for t := 0; t < threads; t++ {
				go func() {
					defer wg.Done()
					rng := newRand()
					for i := 0; i < opsPerThread; i++ {
						if rng.Intn(2) == 0 {
							node := payload.NewIntNode(i)
							if err := l.PushFront(&node.Node); err != nil {
								panic(err)
							}
						} else if head, err := l.Begin().Value(); err == nil {
							_ = l.Remove(head)
						}
					}
				}()
			}
			wg.Wait()
			elapsed := time.Since(start)

			total := threads * opsPerThread
			fmt.Printf("contention: %d ops across %d goroutines in %s (%.0f ops/sec)\n",
				total, threads, elapsed, float64(total)/elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().IntVar(&threads, "threads", 4, "number of concurrent goroutines")
	cmd.Flags().IntVar(&opsPerThread, "ops", 1000, "operations per goroutine")
	return cmd
}
