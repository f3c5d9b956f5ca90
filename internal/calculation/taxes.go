package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sobres/envelope-planner/internal/domain"
)

// ProgressiveTaxCalculator computes income tax by marginal-bracket
// accumulation: each bracket taxes only the slice of income that falls
// inside its range.
type ProgressiveTaxCalculator struct{}

// NewProgressiveTaxCalculator creates a new progressive tax calculator.
func NewProgressiveTaxCalculator() *ProgressiveTaxCalculator {
	return &ProgressiveTaxCalculator{}
}

var hundred = decimal.NewFromInt(100)

// ComputeTax walks the brackets from the lowest floor up and accumulates
// the tax owed on each slice of income. Brackets are not assumed sorted: a
// working copy is sorted by MinAmount on every call. Income exactly at a
// bracket floor contributes nothing to that bracket; tax starts strictly
// above the floor. The result is zero for income at or below the first
// floor and never negative for non-negative rates.
//
// The bracket-count floor and shape validation are mutation-time policy in
// the domain package; this function computes whatever set it is handed.
func (ptc *ProgressiveTaxCalculator) ComputeTax(grossIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	sorted := append([]domain.TaxBracket(nil), brackets...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinAmount.LessThan(sorted[j].MinAmount)
	})

	totalTax := decimal.Zero
	for _, bracket := range sorted {
		if grossIncome.LessThanOrEqual(bracket.MinAmount) {
			break
		}

		sliceTop := grossIncome
		if bracket.MaxAmount != nil {
			sliceTop = decimal.Min(grossIncome, *bracket.MaxAmount)
		}
		taxableInBracket := sliceTop.Sub(bracket.MinAmount)

		if taxableInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(taxableInBracket.Mul(bracket.Percentage).Div(hundred))
		}
	}

	return totalTax
}
