package scenario

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/zeusync/fxnet/internal/observability/log"
	"github.com/zeusync/fxnet/pkg/collision2d"
	"github.com/zeusync/fxnet/pkg/concurrent"
	"github.com/zeusync/fxnet/pkg/fx"
	"github.com/zeusync/fxnet/pkg/fxmath"
	"github.com/zeusync/fxnet/pkg/generic"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Expected bool
	collision2d.Outcome
	// Reversed is the result with the operands swapped.
	Reversed    bool
	Penetration fxmath.Vec2
	Failure     string
	// hash covers every computed value of the case.
	hash uint64
}

func (r CaseResult) Passed() bool { return r.Failure == "" }

// Report summarises a suite run.
type Report struct {
	RunID   uuid.UUID
	Suite   string
	Results []CaseResult
	Failed  int
	// Digest hashes the active tables and every case result in suite order.
	// Equal digests mean bit-identical runs.
	Digest  uint64
	Elapsed time.Duration
}

func (r *Report) Passed() bool { return r.Failed == 0 }

type Runner struct {
	logger  log.Log
	workers int
	limit   int
	buffers *generic.Pool[*[]byte]
}

// NewRunner creates a runner using at most workers goroutines and the given
// GJK iteration cap.
func NewRunner(logger log.Log, workers, limit int) *Runner {
	return &Runner{
		logger:  logger,
		workers: workers,
		limit:   limit,
		buffers: generic.Buffers(256),
	}
}

// Run evaluates every case. Case failures are reported in the Report; the
// error is non-nil only when the context ends first.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*Report, error) {
	runID := uuid.New()
	logger := r.logger.With(log.String("run_id", runID.String()), log.String("suite", suite.Name))
	start := time.Now()

	logger.Info("suite started", log.Int("cases", len(suite.Cases)), log.Int("workers", r.workers))

	results, err := concurrent.Map(ctx, suite.Cases, r.workers, func(_ context.Context, c Case) (CaseResult, error) {
		return r.runCase(c)
	})
	if err != nil {
		return nil, fmt.Errorf("running suite %q: %w", suite.Name, err)
	}

	report := &Report{
		RunID:   runID,
		Suite:   suite.Name,
		Results: results,
		Elapsed: time.Since(start),
	}

	digest := xxhash.New()
	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], fxmath.Tables().Fingerprint())
	_, _ = digest.Write(word[:])

	for _, res := range results {
		binary.LittleEndian.PutUint64(word[:], res.hash)
		_, _ = digest.Write(word[:])

		if res.Exhausted {
			logger.Warn("iteration cap reached", log.String("case", res.Name), log.Int("limit", r.limit))
		}
		if !res.Passed() {
			report.Failed++
			logger.Error("case failed",
				log.String("case", res.Name),
				log.String("reason", res.Failure),
				log.Bool("expected", res.Expected),
				log.Bool("colliding", res.Colliding),
			)
			continue
		}
		logger.Debug("case passed",
			log.String("case", res.Name),
			log.Int("iterations", res.Iterations),
			log.Vec("penetration", res.Penetration),
		)
	}
	report.Digest = digest.Sum64()

	logger.Info("suite finished",
		log.Int("failed", report.Failed),
		log.Hex("digest", report.Digest),
		log.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (r *Runner) runCase(c Case) (CaseResult, error) {
	a, err := c.A.Build()
	if err != nil {
		return CaseResult{}, fmt.Errorf("case %q: %w", c.Name, err)
	}
	b, err := c.B.Build()
	if err != nil {
		return CaseResult{}, fmt.Errorf("case %q: %w", c.Name, err)
	}

	dir := c.Dir.Vec2()
	res := CaseResult{
		Name:        c.Name,
		Expected:    c.Expect,
		Outcome:     collision2d.Query(a, b, dir, r.limit),
		Reversed:    collision2d.CheckLimit(b, a, dir, r.limit),
		Penetration: collision2d.Penetration(a, b, dir),
	}

	switch {
	case res.Colliding != c.Expect:
		res.Failure = fmt.Sprintf("expected colliding=%t", c.Expect)
	case res.Reversed != res.Colliding:
		res.Failure = "result changes when the operands are swapped"
	case c.Penetration != nil && !near(res.Penetration, c.Penetration.Vec2(), c.tolerance()):
		res.Failure = fmt.Sprintf("penetration %s, want %s", res.Penetration, c.Penetration.Vec2())
	}

	res.hash, err = r.hashCase(res)
	if err != nil {
		return CaseResult{}, fmt.Errorf("case %q: %w", c.Name, err)
	}
	return res, nil
}

func (r *Runner) hashCase(res CaseResult) (uint64, error) {
	buf := r.buffers.Get()
	defer r.buffers.Put(buf)

	b := append(*buf, res.Name...)
	b = append(b, 0, flag(res.Colliding), flag(res.Reversed), flag(res.Exhausted))
	b = binary.LittleEndian.AppendUint32(b, uint32(res.Iterations))
	pen, err := res.Penetration.Serialize()
	if err != nil {
		return 0, err
	}
	b = append(b, pen...)
	*buf = b

	return xxhash.Sum64(b), nil
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func near(a, b fxmath.Vec2, tolerance fx.Num) bool {
	return fxmath.Abs(a.X.Sub(b.X)).LessEq(tolerance) && fxmath.Abs(a.Y.Sub(b.Y)).LessEq(tolerance)
}
