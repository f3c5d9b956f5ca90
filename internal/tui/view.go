package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sobres/envelope-planner/internal/domain"
	"github.com/sobres/envelope-planner/internal/output"
)

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("PLANIFICADOR MENSUAL "+m.period.Key()) + "\n\n")

	sb.WriteString(sectionStyle.Render("INGRESOS") + "\n")
	rowIdx := 0
	for _, inc := range m.plan.IncomeItems {
		sb.WriteString(m.renderLine(rowIdx, inc.Name, inc.Amount, decimal.Decimal{}, false))
		rowIdx++
	}
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("EGRESOS") + "\n")
	for _, cat := range m.dist.Categories {
		sb.WriteString(fmt.Sprintf("  %s\n", cat.Name))
		for _, item := range cat.Items {
			sb.WriteString(m.renderLine(rowIdx, "  "+item.Name, item.Amount, item.Percentage, item.AutoCalculated()))
			rowIdx++
		}
	}
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("RESUMEN") + "\n")
	sb.WriteString(fmt.Sprintf("  %-28s %16s\n", "Total ingresos", output.FormatCurrency(m.dist.TotalIncome)))
	sb.WriteString(fmt.Sprintf("  %-28s %16s\n", "Total egresos", output.FormatCurrency(m.dist.TotalExpenses)))
	remaining := output.FormatCurrency(m.dist.Remaining)
	if m.dist.OverAllocated() {
		sb.WriteString(fmt.Sprintf("  %-28s %16s\n", "Restante", warningStyle.Render(remaining)))
		sb.WriteString("  " + warningStyle.Render("Los egresos superan los ingresos") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("  %-28s %16s\n", "Restante", remainingStyle.Render(remaining)))
	}

	if m.status != "" {
		sb.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	help := "up/down: navigate | enter: edit | r: new month | q: quit"
	if m.editing {
		help = "enter: save | esc: cancel"
	}
	sb.WriteString("\n" + helpStyle.Render(help) + "\n")

	return appStyle.Render(sb.String())
}

// renderLine renders one navigable row. The amount column is replaced by
// the text input while that row is being edited.
func (m Model) renderLine(idx int, name string, amount, percentage decimal.Decimal, auto bool) string {
	cursor := "  "
	selected := idx == m.cursor
	if selected {
		cursor = "> "
	}

	amountCol := output.FormatCurrency(amount)
	if selected && m.editing {
		amountCol = m.input.View()
	}

	pctCol := ""
	if !percentage.IsZero() {
		pctCol = output.FormatPercentage(percentage)
	}

	label := name
	if auto {
		label = name + " (auto)"
	}

	line := fmt.Sprintf("%s%-34s %16s %8s", cursor, label, amountCol, pctCol)
	if selected && !m.editing {
		return selectedStyle.Render(line) + "\n"
	}
	if auto {
		return autoStyle.Render(line) + "\n"
	}
	return line + "\n"
}

// Run starts the planner TUI for a plan and period.
func Run(plan *domain.Plan, legal domain.MonthlyLegalConfig, period domain.Period) error {
	p := tea.NewProgram(NewModel(plan, legal, period), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
