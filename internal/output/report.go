package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sobres/envelope-planner/internal/domain"
)

// ReportGenerator renders a computed distribution in various formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes a report for the distribution in the given format:
// console, csv or json.
func GenerateReport(w io.Writer, dist *domain.Distribution, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.WriteConsoleReport(w, dist)
	case "csv":
		return generator.WriteCSVReport(w, dist)
	case "json":
		return generator.WriteJSONReport(w, dist)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteConsoleReport renders the distribution as a readable console table.
func (rg *ReportGenerator) WriteConsoleReport(w io.Writer, dist *domain.Distribution) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("MONTHLY DISTRIBUTION - %s\n", dist.Period))
	sb.WriteString(strings.Repeat("=", 72) + "\n\n")

	sb.WriteString("INGRESOS\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-48s %14s %7s\n", "Total Income",
		FormatCurrency(dist.TotalIncome), "100.00%"))
	sb.WriteString("\n")

	sb.WriteString("EGRESOS\n")
	for _, cat := range dist.Categories {
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%s\n", cat.Name))
		for _, item := range cat.Items {
			name := item.Name
			if item.AutoCalculated() {
				name += " (auto)"
			}
			sb.WriteString(fmt.Sprintf("  %-46s %14s %7s\n", name,
				FormatCurrency(item.Amount), FormatPercentage(item.Percentage)))
		}
		sb.WriteString(fmt.Sprintf("  %-46s %14s %7s\n", "SUB-TOTAL",
			FormatCurrency(cat.Total), FormatPercentage(cat.Percentage)))
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n\n")

	sb.WriteString("RESUMEN\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Total Ingresos:   %s\n", FormatCurrency(dist.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Total Egresos:    %s\n", FormatCurrency(dist.TotalExpenses)))
	sb.WriteString(fmt.Sprintf("Restante:         %s\n", FormatCurrency(dist.Remaining)))
	sb.WriteString(fmt.Sprintf("%% Asignado:       %s\n", FormatPercentage(dist.PercentAllocated)))
	sb.WriteString(fmt.Sprintf("Seguro calculado: %s\n", FormatCurrency(dist.CalculatedSeguro)))
	sb.WriteString(fmt.Sprintf("Renta calculada:  %s\n", FormatCurrency(dist.CalculatedRenta)))
	if dist.OverAllocated() {
		sb.WriteString("\nWARNING: expenses exceed income for this period\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSONReport renders the full distribution as indented JSON.
func (rg *ReportGenerator) WriteJSONReport(w io.Writer, dist *domain.Distribution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dist)
}

// FormatCurrency formats a decimal as a colón amount.
func FormatCurrency(amount decimal.Decimal) string {
	return "CRC " + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
