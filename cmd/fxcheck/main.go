// Command fxcheck runs a collision scenario suite and prints its determinism
// digest. It exits with status 1 when any case fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/fxnet/internal/injector"
	"github.com/zeusync/fxnet/internal/observability/log"
	"github.com/zeusync/fxnet/internal/scenario"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	suitePath := flag.String("suite", "", "Scenario suite YAML file")
	tablesPath := flag.String("tables", "", "Table data file (overrides tables.path)")
	flag.Parse()

	if *suitePath == "" {
		fmt.Fprintln(os.Stderr, "fxcheck: -suite is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tk, err := injector.InitializeToolkit(injector.Options{ConfigPath: *configPath, TablesPath: *tablesPath})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fxcheck:", err)
		os.Exit(1)
	}

	passed, err := run(ctx, tk, *suitePath)
	_ = tk.Logger.Sync()
	if err != nil || !passed {
		os.Exit(1)
	}
}

func run(ctx context.Context, tk *injector.Toolkit, suitePath string) (bool, error) {
	logger := tk.Logger.Named("fxcheck")

	suite, err := scenario.LoadFile(suitePath)
	if err != nil {
		logger.Error("loading suite failed", log.String("path", suitePath), log.Error(err))
		return false, err
	}

	report, err := tk.Runner.Run(ctx, suite)
	if err != nil {
		logger.Error("running suite failed", log.Error(err))
		return false, err
	}

	fmt.Printf("%016x\n", report.Digest)
	return report.Passed(), nil
}
