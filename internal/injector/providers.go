package injector

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/wire"
	"github.com/zeusync/fxnet/internal/config"
	"github.com/zeusync/fxnet/internal/observability/log"
	"github.com/zeusync/fxnet/internal/scenario"
	"github.com/zeusync/fxnet/pkg/fx/lut"
	"github.com/zeusync/fxnet/pkg/fxmath"
)

var ErrFingerprintMismatch = errors.New("tables fingerprint mismatch")

// Options carries command-line input into the providers.
type Options struct {
	ConfigPath string
	// TablesPath overrides tables.path when set.
	TablesPath string
}

// Toolkit is everything the commands need.
type Toolkit struct {
	Config *config.Config
	Logger *log.Logger
	Tables *lut.Tables
	Runner *scenario.Runner
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideTables,
	ProvideRunner,
	wire.Struct(new(Toolkit), "*"),
)

func ProvideConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.TablesPath != "" {
		cfg.Tables.Path = opts.TablesPath
	}
	return cfg, nil
}

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(cfg.Log.Level)
}

// ProvideTables loads the configured table data file, checks its fingerprint
// and installs it into fxmath. Without a file the built-in tables are used.
func ProvideTables(cfg *config.Config, logger *log.Logger) (*lut.Tables, error) {
	tables := lut.Default()
	builtin := tables.Fingerprint()

	if cfg.Tables.Path != "" {
		f, err := os.Open(cfg.Tables.Path)
		if err != nil {
			return nil, fmt.Errorf("opening tables: %w", err)
		}
		defer f.Close()

		if tables, err = lut.ReadCSV(f); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.Tables.Path, err)
		}
	}

	fingerprint := tables.Fingerprint()
	expected, err := cfg.ExpectedFingerprint()
	if err != nil {
		return nil, err
	}
	if expected != 0 && expected != fingerprint {
		return nil, fmt.Errorf("%w: got %016x, want %016x", ErrFingerprintMismatch, fingerprint, expected)
	}
	if fingerprint != builtin {
		logger.Warn("tables differ from the built-in set",
			log.String("path", cfg.Tables.Path),
			log.Hex("fingerprint", fingerprint),
			log.Hex("builtin", builtin),
		)
	}

	fxmath.Install(tables)
	logger.Debug("tables installed", log.Hex("fingerprint", fingerprint))
	return tables, nil
}

// ProvideRunner depends on the tables so they are installed before any case
// runs.
func ProvideRunner(cfg *config.Config, logger *log.Logger, _ *lut.Tables) *scenario.Runner {
	return scenario.NewRunner(logger.Named("scenario"), cfg.RunnerWorkers(), cfg.Runner.IterationLimit)
}
