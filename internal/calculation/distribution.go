package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/sobres/envelope-planner/internal/domain"
)

// BudgetDistributionEngine recomputes a plan's derived numbers: the two
// auto-calculated legal deductions, every item's share of income, category
// subtotals and the global totals. It is a pure function of its inputs and
// holds no state between calls.
type BudgetDistributionEngine struct {
	TaxCalc *ProgressiveTaxCalculator
}

// NewBudgetDistributionEngine creates a new distribution engine.
func NewBudgetDistributionEngine() *BudgetDistributionEngine {
	return &BudgetDistributionEngine{
		TaxCalc: NewProgressiveTaxCalculator(),
	}
}

// ComputeDistribution derives a fresh Distribution from total income, the
// category tree and the period's legal config. The order of operations is
// fixed: seguro and renta first, then item amounts and percentages, then
// category subtotals, then the global totals and remainder.
//
// Auto-calculated items are recomputed from income and config on every
// call; any cached amount on the input item is ignored. Zero or negative
// income degrades every percentage to zero instead of dividing by zero;
// no input produces an error.
func (bde *BudgetDistributionEngine) ComputeDistribution(totalIncome decimal.Decimal, categories []domain.ExpenseCategory, legal domain.MonthlyLegalConfig) *domain.Distribution {
	calculatedSeguro := totalIncome.Mul(legal.SeguroPercentage).Div(hundred)
	calculatedRenta := bde.TaxCalc.ComputeTax(totalIncome, legal.TaxBrackets)

	results := make([]domain.CategoryResult, 0, len(categories))
	totalExpenses := decimal.Zero

	for _, cat := range categories {
		items := make([]domain.ItemResult, 0, len(cat.Items))
		catTotal := decimal.Zero

		for _, item := range cat.Items {
			amount := item.Amount
			switch item.CalculationType {
			case domain.CalcSeguro:
				amount = calculatedSeguro
			case domain.CalcRenta:
				amount = calculatedRenta
			}

			items = append(items, domain.ItemResult{
				ID:              item.ID,
				Name:            item.Name,
				Amount:          amount,
				Percentage:      percentOf(amount, totalIncome),
				CalculationType: item.CalculationType,
			})
			catTotal = catTotal.Add(amount)
		}

		results = append(results, domain.CategoryResult{
			ID:         cat.ID,
			Name:       cat.Name,
			Items:      items,
			Total:      catTotal,
			Percentage: percentOf(catTotal, totalIncome),
		})
		totalExpenses = totalExpenses.Add(catTotal)
	}

	return &domain.Distribution{
		TotalIncome:      totalIncome,
		CalculatedSeguro: calculatedSeguro,
		CalculatedRenta:  calculatedRenta,
		Categories:       results,
		TotalExpenses:    totalExpenses,
		Remaining:        totalIncome.Sub(totalExpenses),
		PercentAllocated: percentOf(totalExpenses, totalIncome),
	}
}

// percentOf returns amount/total*100, falling back to zero when the total
// is not positive.
func percentOf(amount, total decimal.Decimal) decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred)
}
