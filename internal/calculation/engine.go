package calculation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sobres/envelope-planner/internal/domain"
)

// Logger is the minimal logging surface the engine needs. The CLI plugs in
// a slog-backed implementation; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// PlannerEngine orchestrates planner computations: it resolves the legal
// config for a period and runs the distribution engine over a plan.
type PlannerEngine struct {
	Distribution *BudgetDistributionEngine
	Logger       Logger
}

// NewPlannerEngine creates a new planner engine with a no-op logger.
func NewPlannerEngine() *PlannerEngine {
	return &PlannerEngine{
		Distribution: NewBudgetDistributionEngine(),
		Logger:       NopLogger{},
	}
}

// SetLogger replaces the engine logger. A nil logger installs the no-op
// logger.
func (pe *PlannerEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	pe.Logger = l
}

// ComputeMonth recomputes one period's distribution from scratch. The call
// is deterministic and idempotent: identical inputs produce identical
// outputs.
func (pe *PlannerEngine) ComputeMonth(plan *domain.Plan, legal domain.MonthlyLegalConfig, period domain.Period) *domain.Distribution {
	totalIncome := plan.TotalIncome()
	pe.Logger.Debugf("computing distribution for %s: income=%s brackets=%d",
		period, totalIncome, len(legal.TaxBrackets))

	dist := pe.Distribution.ComputeDistribution(totalIncome, plan.Categories, legal)
	dist.Period = period

	if dist.OverAllocated() {
		pe.Logger.Warnf("period %s over-allocated by %s", period, dist.Remaining.Neg())
	}
	return dist
}

// ComputeYear computes all twelve months of a year concurrently. Each
// month is an independent, closed computation, so no coordination is
// needed beyond collecting results. Per-period configs come from the
// supplied lookup, falling back to the year default for missing periods.
func (pe *PlannerEngine) ComputeYear(ctx context.Context, plan *domain.Plan, configs map[string]domain.MonthlyLegalConfig, year int) ([]*domain.Distribution, error) {
	results := make([]*domain.Distribution, 12)

	g, _ := errgroup.WithContext(ctx)
	for month := 1; month <= 12; month++ {
		period := domain.Period{Year: year, Month: time.Month(month)}
		idx := month - 1
		g.Go(func() error {
			legal := domain.ResolveLegalConfig(configs, period)
			if err := legal.Validate(); err != nil {
				return fmt.Errorf("legal config for %s: %w", period, err)
			}
			results[idx] = pe.ComputeMonth(plan, legal, period)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
