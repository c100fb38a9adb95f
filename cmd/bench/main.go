// Command bench is a Go rewrite of the original C++ micro-benchmark
// suite: instead of Google Benchmark fixtures it is a small cobra CLI
// with one subcommand per scenario, printing throughput to stdout.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/concurrent-ds/lockfreelist/internal/config"
	"github.com/concurrent-ds/lockfreelist/internal/logging"
)

var (
	logLevel   string
	gomaxprocs int
	configPath string

	// cfg is non-nil once --config has been loaded in
	// PersistentPreRunE; subcommands consult it to seed any flag the
	// invocation did not set explicitly.
	cfg *config.Config
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bench",
		Short: "Micro-benchmarks for the lock-free list and the packages built on it",
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level [debug|info|warn|error]")
	root.PersistentFlags().IntVar(&gomaxprocs, "gomaxprocs", 0, "set runtime.GOMAXPROCS (0 leaves it unchanged)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config seeding workload defaults (see internal/config)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logging.SetLevel(lvl)
		if gomaxprocs > 0 {
			runtime.GOMAXPROCS(gomaxprocs)
		}
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return nil
	}

	root.AddCommand(pushFrontCmd(), mixedCmd(), contentionCmd(), iterateCmd(), serveMetricsCmd())
	return root
}

// applyIntDefault overwrites *val with cfgVal when cfg was loaded
// (--config was given) and the flag named name was not set explicitly
// on the command line, so an explicit flag always wins over the file.
func applyIntDefault(cmd *cobra.Command, name string, val *int, cfgVal int) {
	if cfg != nil && !cmd.Flags().Changed(name) {
		*val = cfgVal
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
