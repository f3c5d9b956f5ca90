package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sobres/envelope-planner/internal/domain"
)

func TestComputeTax2026Brackets(t *testing.T) {
	calc := NewProgressiveTaxCalculator()
	brackets := domain.DefaultBrackets2026()

	// 0% up to 918000, then 10% of 429000, then 15% of the rest.
	income := decimal.NewFromInt(2227000)
	tax := calc.ComputeTax(income, brackets)

	expected := decimal.NewFromInt(42900).Add(decimal.NewFromInt(132000))
	assert.True(t, tax.Equal(expected), "expected %s, got %s", expected, tax)
}

func TestComputeTax2025Brackets(t *testing.T) {
	calc := NewProgressiveTaxCalculator()
	brackets := domain.DefaultBrackets2025()

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"inside the free bracket", decimal.NewFromInt(500000), decimal.Zero},
		{"exactly at the first floor", decimal.NewFromInt(863000), decimal.Zero},
		{"one colon above the first floor", decimal.NewFromInt(863001), decimal.NewFromFloat(0.10)},
		{"top of second bracket", decimal.NewFromInt(1267000), decimal.NewFromInt(40400)},
		{"into the unbounded bracket", decimal.NewFromInt(5445000),
			// 40400 + 143400 + 444400 + 250000
			decimal.NewFromInt(878200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := calc.ComputeTax(tt.income, brackets)
			assert.True(t, tax.Equal(tt.expected), "expected %s, got %s", tt.expected, tax)
		})
	}
}

func TestComputeTaxSortsUnsortedInput(t *testing.T) {
	calc := NewProgressiveTaxCalculator()

	sorted := domain.DefaultBrackets2026()
	shuffled := []domain.TaxBracket{sorted[4], sorted[1], sorted[3], sorted[0], sorted[2]}

	income := decimal.NewFromInt(3000000)
	assert.True(t, calc.ComputeTax(income, shuffled).Equal(calc.ComputeTax(income, sorted)),
		"bracket order must not affect the result")
}

func TestComputeTaxSingleFlatBracket(t *testing.T) {
	// The 2-bracket floor is mutation-time policy; handed a single bracket
	// directly the calculator still computes a flat tax.
	calc := NewProgressiveTaxCalculator()
	brackets := []domain.TaxBracket{
		{ID: 1, MinAmount: decimal.Zero, MaxAmount: nil, Percentage: decimal.NewFromInt(10)},
	}

	tax := calc.ComputeTax(decimal.NewFromInt(1000000), brackets)
	assert.True(t, tax.Equal(decimal.NewFromInt(100000)), "expected flat 10%%, got %s", tax)
}

func TestComputeTaxMonotonicInIncome(t *testing.T) {
	calc := NewProgressiveTaxCalculator()
	brackets := domain.DefaultBrackets2026()

	incomes := []int64{0, 100000, 918000, 918001, 1000000, 1347000, 2364000, 4727000, 5000000, 10000000}
	previous := decimal.Zero
	for _, income := range incomes {
		tax := calc.ComputeTax(decimal.NewFromInt(income), brackets)
		assert.True(t, tax.GreaterThanOrEqual(previous),
			"tax decreased from %s to %s at income %d", previous, tax, income)
		previous = tax
	}
}

func TestComputeTaxNeverNegativeNorAboveIncome(t *testing.T) {
	calc := NewProgressiveTaxCalculator()
	brackets := domain.DefaultBrackets2026()

	for _, income := range []int64{0, 1, 863000, 2227000, 9000000} {
		d := decimal.NewFromInt(income)
		tax := calc.ComputeTax(d, brackets)
		assert.True(t, tax.GreaterThanOrEqual(decimal.Zero), "tax must not be negative")
		assert.True(t, tax.LessThanOrEqual(d), "tax %s exceeds income %s", tax, d)
	}
}
