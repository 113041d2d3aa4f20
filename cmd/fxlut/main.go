// Command fxlut writes the lookup table data file and an accuracy report for
// the tables it wrote.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/fxnet/internal/injector"
	"github.com/zeusync/fxnet/internal/lutreport"
	"github.com/zeusync/fxnet/internal/observability/log"
	"github.com/zeusync/fxnet/pkg/fx/lut"
	"github.com/zeusync/fxnet/pkg/fxmath"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outPath := flag.String("out", "tables.csv", "Table data file to write")
	reportPath := flag.String("report", "", "Accuracy report CSV to write (empty = skip)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tk, err := injector.InitializeToolkit(injector.Options{ConfigPath: *configPath})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fxlut:", err)
		os.Exit(1)
	}

	err = run(ctx, tk, *outPath, *reportPath)
	_ = tk.Logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, tk *injector.Toolkit, outPath, reportPath string) error {
	logger := tk.Logger.Named("fxlut")

	generated := lut.Generate()
	if err := writeFile(outPath, func(f *os.File) error { return lut.WriteCSV(f, generated) }); err != nil {
		logger.Error("writing tables failed", log.String("path", outPath), log.Error(err))
		return err
	}
	for _, t := range generated.All() {
		logger.Info("table written",
			log.String("table", t.Name()),
			log.Int("samples", t.Len()),
			log.Uint64("shift", uint64(t.Shift())),
			log.Num("range", t.Range()),
		)
	}
	logger.Info("tables written", log.String("path", outPath), log.Hex("fingerprint", generated.Fingerprint()))

	if reportPath == "" {
		return nil
	}

	// Measure the tables just written, not the ones tables.path loaded.
	fxmath.Install(generated)
	rows, err := lutreport.Measure(ctx, tk.Config.Report.Samples, tk.Config.ReportWorkers())
	if err != nil {
		logger.Error("measuring accuracy failed", log.Error(err))
		return err
	}
	if err := writeFile(reportPath, func(f *os.File) error { return lutreport.WriteCSV(f, rows) }); err != nil {
		logger.Error("writing report failed", log.String("path", reportPath), log.Error(err))
		return err
	}
	for _, row := range rows {
		logger.Info("accuracy",
			log.String("function", row.Function),
			log.Float64("max_abs_error", row.Max),
			log.Float64("p99_abs_error", row.P99),
			log.String("worst_input", row.WorstInput),
		)
	}
	logger.Info("report written", log.String("path", reportPath), log.Hex("fingerprint", generated.Fingerprint()))
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
