package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobres/envelope-planner/internal/domain"
)

const validPlanYAML = `
period: "2026-03"
income:
  - id: 1
    name: ENCORA
    amount: 2227000
categories:
  - id: deducciones
    name: DEDUCCIONES
    items:
      - id: 1
        name: SEGURO
        calculation_type: seguro
      - id: 2
        name: RENTA
        calculation_type: renta
  - id: necesidades
    name: NECESIDADES BASICAS
    items:
      - id: 3
        name: APORTE RESIDENCIA
        amount: 400000
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	pf, err := parser.LoadFromFile(writePlanFile(t, validPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "2026-03", pf.Period)
	require.Len(t, pf.Income, 1)
	assert.True(t, pf.Income[0].Amount.Equal(decimal.NewFromInt(2227000)))
	require.Len(t, pf.Categories, 2)
	assert.Equal(t, domain.CalcSeguro, pf.Categories[0].Items[0].CalculationType)
	assert.False(t, pf.Categories[1].Items[0].IsAutoCalculated())
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestValidatePlanFileErrors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			"bad period",
			"period: \"march 2026\"\n",
			"invalid period",
		},
		{
			"duplicate category ids",
			`
categories:
  - id: gastos
    name: GASTOS
  - id: gastos
    name: OTROS
`,
			"duplicate id",
		},
		{
			"duplicate item ids across categories",
			`
categories:
  - id: gastos
    name: GASTOS
    items:
      - id: 1
        name: SPOTIFY
  - id: ahorro
    name: AHORRO
    items:
      - id: 1
        name: PENSION
`,
			"duplicate item id",
		},
		{
			"unknown calculation type",
			`
categories:
  - id: deducciones
    name: DEDUCCIONES
    items:
      - id: 1
        name: IVA
        calculation_type: iva
`,
			"unknown calculation type",
		},
		{
			"negative amount",
			`
categories:
  - id: gastos
    name: GASTOS
    items:
      - id: 1
        name: SPOTIFY
        amount: -5
`,
			"must not be negative",
		},
		{
			"invalid legal override",
			`
legal:
  seguro_percentage: 10.67
  tax_brackets:
    - id: 1
      min_amount: 0
      percentage: 10
`,
			"legal config validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadFromFile(writePlanFile(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	pf := &PlanFile{Period: "2026-07"}
	now := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.Period{Year: 2026, Month: time.July}, pf.ResolvePeriod(now))

	pf.Period = ""
	assert.Equal(t, domain.Period{Year: 2025, Month: time.November}, pf.ResolvePeriod(now))
}

func TestResolveLegal(t *testing.T) {
	pf := &PlanFile{}
	period := domain.Period{Year: 2025, Month: time.June}

	legal := pf.ResolveLegal(period)
	assert.True(t, legal.TaxBrackets[1].MinAmount.Equal(decimal.NewFromInt(863000)),
		"no override resolves to the year default")

	override := domain.DefaultLegalConfig(2026)
	override.SeguroPercentage = decimal.NewFromInt(9)
	pf.Legal = &override
	assert.True(t, pf.ResolveLegal(period).SeguroPercentage.Equal(decimal.NewFromInt(9)))
}
