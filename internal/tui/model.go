// Package tui is the interactive monthly planner. It shows the income and
// expense plan for one period, recomputes the distribution after every edit
// and keeps auto-calculated deduction lines read only.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sobres/envelope-planner/internal/calculation"
	"github.com/sobres/envelope-planner/internal/domain"
)

// rowKind distinguishes the two editable row types in the planner table.
type rowKind int

const (
	rowIncome rowKind = iota
	rowExpense
)

// row is one navigable line: an income item or an expense item, addressed
// by plan ids so edits survive recomputation.
type row struct {
	kind       rowKind
	incomeID   int
	categoryID string
	itemID     int
}

// Model is the planner TUI state.
type Model struct {
	plan   *domain.Plan
	legal  domain.MonthlyLegalConfig
	period domain.Period
	engine *calculation.PlannerEngine

	dist *domain.Distribution
	rows []row

	cursor  int
	editing bool
	input   textinput.Model

	status string
	width  int
	height int
}

// NewModel builds the planner model for one period. The distribution is
// computed immediately so the first frame already shows derived amounts.
func NewModel(plan *domain.Plan, legal domain.MonthlyLegalConfig, period domain.Period) Model {
	input := textinput.New()
	input.Placeholder = "0"
	input.CharLimit = 14
	input.Width = 16

	m := Model{
		plan:   plan,
		legal:  legal,
		period: period,
		engine: calculation.NewPlannerEngine(),
		input:  input,
		width:  80,
		height: 24,
	}
	m.recompute()
	m.rebuildRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// recompute refreshes the derived distribution from the current plan.
func (m *Model) recompute() {
	m.dist = m.engine.ComputeMonth(m.plan, m.legal, m.period)
}

// rebuildRows flattens the plan into the navigable row list, income first
// then every expense item in category order.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for _, inc := range m.plan.IncomeItems {
		m.rows = append(m.rows, row{kind: rowIncome, incomeID: inc.ID})
	}
	for _, cat := range m.plan.Categories {
		for _, item := range cat.Items {
			m.rows = append(m.rows, row{
				kind:       rowExpense,
				categoryID: cat.ID,
				itemID:     item.ID,
			})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// currentRow returns the row under the cursor, or false when the plan is
// empty.
func (m *Model) currentRow() (row, bool) {
	if len(m.rows) == 0 {
		return row{}, false
	}
	return m.rows[m.cursor], true
}
