package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/concurrent-ds/lockfreelist/list"
	"github.com/concurrent-ds/lockfreelist/payload"
)

// iterateCmd is the Go counterpart of BM_IteratorForward: populate a
// list once, then repeatedly sum it via the iterator and report
// nodes/sec of traversal.
func iterateCmd() *cobra.Command {
	var n int
	var passes int

	cmd := &cobra.Command{
		Use:   "iterate",
		Short: "Benchmark forward iteration over a populated list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg != nil {
				applyIntDefault(cmd, "n", &n, cfg.Bench.N)
			}
			l := list.New()
			for i := 0; i < n; i++ {
				node := payload.NewIntNode(i)
				if err := l.PushBack(&node.Node); err != nil {
					return err
				}
			}

			start := time.Now()
			sum := 0
			for p := 0; p < passes; p++ {
				for it := l.Begin(); ; it = it.Next() {
					v, err := it.Value()
					if err != nil {
						break
					}
					sum += payload.AsIntNode(v).Value
				}
			}
			elapsed := time.Since(start)

			total := n * passes
			fmt.Printf("iterate: %d node visits in %s (%.0f visits/sec, checksum %d)\n",
				total, elapsed, float64(total)/elapsed.Seconds(), sum)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 8192, "list size to populate")
	cmd.Flags().IntVar(&passes, "passes", 100, "number of full traversals")
	return cmd
}
