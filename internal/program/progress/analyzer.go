package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitprogram/internal/program"
	"github.com/2beens/fitprogram/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=progress_test

type historyRepo interface {
	ListHistory(ctx context.Context, programID int64) ([]program.HistoryRecord, error)
}

// Analyzer replays the ledger and the stored history of a program into Stats.
type Analyzer struct {
	repo historyRepo
}

func NewAnalyzer(repo historyRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Stats(
	ctx context.Context,
	s *program.Schedule,
	tmpl *program.Template,
	today time.Time,
) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.program.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("program.id", s.ID))

	history, err := a.repo.ListHistory(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	stats := Compute(s, tmpl, history, today)
	return &stats, nil
}
