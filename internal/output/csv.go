package output

import (
	"encoding/csv"
	"io"

	"github.com/sobres/envelope-planner/internal/domain"
)

// WriteCSVReport writes one row per expense item plus a totals row, the
// layout spreadsheet imports expect.
func (rg *ReportGenerator) WriteCSVReport(w io.Writer, dist *domain.Distribution) error {
	cw := csv.NewWriter(w)

	header := []string{"Period", "Category", "Item", "Auto", "Amount", "Percentage"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, cat := range dist.Categories {
		for _, item := range cat.Items {
			auto := ""
			if item.AutoCalculated() {
				auto = string(item.CalculationType)
			}
			row := []string{
				dist.Period.Key(),
				cat.Name,
				item.Name,
				auto,
				item.Amount.StringFixed(2),
				item.Percentage.StringFixed(2),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	totals := []string{
		dist.Period.Key(),
		"TOTAL",
		"",
		"",
		dist.TotalExpenses.StringFixed(2),
		dist.PercentAllocated.StringFixed(2),
	}
	if err := cw.Write(totals); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
