package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobres/envelope-planner/internal/calculation"
	"github.com/sobres/envelope-planner/internal/domain"
)

func testDistribution() *domain.Distribution {
	engine := calculation.NewPlannerEngine()
	plan := &domain.Plan{
		IncomeItems: []domain.IncomeItem{
			{ID: 1, Name: "ENCORA", Amount: decimal.NewFromInt(2227000)},
		},
		Categories: []domain.ExpenseCategory{
			{
				ID:   "deducciones",
				Name: "DEDUCCIONES",
				Items: []domain.ExpenseItem{
					{ID: 1, Name: "SEGURO", CalculationType: domain.CalcSeguro},
					{ID: 2, Name: "RENTA", CalculationType: domain.CalcRenta},
				},
			},
			{
				ID:   "necesidades",
				Name: "NECESIDADES BASICAS",
				Items: []domain.ExpenseItem{
					{ID: 3, Name: "APORTE RESIDENCIA", Amount: decimal.NewFromInt(400000)},
				},
			},
		},
	}
	return engine.ComputeMonth(plan, domain.DefaultLegalConfig(2026),
		domain.Period{Year: 2026, Month: time.March})
}

func TestWriteConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, testDistribution(), "console"))

	out := buf.String()
	assert.Contains(t, out, "MONTHLY DISTRIBUTION - 2026-03")
	assert.Contains(t, out, "DEDUCCIONES")
	assert.Contains(t, out, "SEGURO (auto)")
	assert.Contains(t, out, "CRC 174900.00")
	assert.Contains(t, out, "Total Ingresos:   CRC 2227000.00")
	assert.NotContains(t, out, "WARNING", "plan within budget must not warn")
}

func TestWriteConsoleReportOverAllocated(t *testing.T) {
	dist := testDistribution()
	dist.Remaining = decimal.NewFromInt(-1)

	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, dist, "console"))
	assert.Contains(t, buf.String(), "WARNING: expenses exceed income")
}

func TestWriteCSVReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, testDistribution(), "csv"))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	// Header + 3 items + totals row.
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Period", "Category", "Item", "Auto", "Amount", "Percentage"}, records[0])
	assert.Equal(t, "seguro", records[1][3])
	assert.Equal(t, "174900.00", records[2][4])
	assert.Equal(t, "TOTAL", records[4][1])
}

func TestWriteJSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, testDistribution(), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2227000", decoded["totalIncome"])
	assert.NotEmpty(t, decoded["categories"])
}

func TestGenerateReportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, testDistribution(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
