package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/ports"
)

// ComputeDerangement runs one read → calculate → write pass.
type ComputeDerangement struct {
	input  ports.InputReader
	output ports.OutputWriter
	calc   ports.DerangementCalculator
	store  ports.RunStore
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*ComputeDerangement)

// WithRunStore records every successful run. A nil store disables history.
func WithRunStore(s ports.RunStore) Option {
	return func(uc *ComputeDerangement) { uc.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(uc *ComputeDerangement) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(uc *ComputeDerangement) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewComputeDerangement(in ports.InputReader, out ports.OutputWriter, calc ports.DerangementCalculator, opts ...Option) *ComputeDerangement {
	uc := &ComputeDerangement{
		input:  in,
		output: out,
		calc:   calc,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute returns the first error from reading, calculating or writing.
// History save failures are logged and do not fail the run.
func (uc *ComputeDerangement) Execute(ctx context.Context) (domain.RunRecord, error) {
	run := domain.RunRecord{
		OutputPath: uc.output.OutputPath(),
		StartedAt:  uc.now(),
	}

	if err := ctx.Err(); err != nil {
		return run, err
	}

	n, err := uc.input.ReadInput()
	if err != nil {
		uc.log.Error("run.failed", "stage", "read", "err", err)
		return run, err
	}
	run.Input = n
	uc.log.Debug("run.input", "n", n)

	result, err := uc.calc.Calculate(n)
	if err != nil {
		uc.log.Error("run.failed", "stage", "calculate", "n", n, "err", err)
		return run, err
	}
	run.Result = result

	if err := ctx.Err(); err != nil {
		return run, err
	}

	if err := uc.output.WriteOutput(result); err != nil {
		uc.log.Error("run.failed", "stage", "write", "err", err)
		return run, err
	}
	run.EndedAt = uc.now()

	uc.log.Info("run.completed",
		"n", n,
		"result", result,
		"output", run.OutputPath,
		"duration", run.Duration(),
	)

	if uc.store != nil {
		if id, err := uc.store.SaveRun(run); err != nil {
			uc.log.Warn("run.history.save_failed", "err", err)
		} else {
			uc.log.Debug("run.history.saved", "id", id)
		}
	}

	return run, nil
}
