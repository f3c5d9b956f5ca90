package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sobres/envelope-planner/internal/domain"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", "e":
		return m.startEditing()

	case "r":
		m.plan.ResetForNewMonth()
		m.recompute()
		m.rebuildRows()
		m.status = "plan reset for a new month, auto deductions kept"
	}

	return m, nil
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}

	if r.kind == rowExpense {
		if item := m.findItem(r); item != nil && item.IsAutoCalculated() {
			m.status = fmt.Sprintf("%s is calculated automatically and cannot be edited", item.Name)
			return m, nil
		}
	}

	m.editing = true
	m.status = ""
	m.input.SetValue(m.currentAmount(r).String())
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		raw = "0"
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		m.status = fmt.Sprintf("invalid amount %q", raw)
		return m, nil
	}

	switch r.kind {
	case rowIncome:
		err = m.plan.SetIncomeAmount(r.incomeID, amount)
	case rowExpense:
		err = m.plan.SetItemAmount(r.categoryID, r.itemID, amount)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAutoCalculatedItem) {
			m.status = "auto-calculated items cannot be edited"
		} else {
			m.status = err.Error()
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	m.editing = false
	m.input.Blur()
	m.recompute()
	m.status = ""
	return m, nil
}

// findItem resolves an expense row back to its plan item.
func (m *Model) findItem(r row) *domain.ExpenseItem {
	for ci := range m.plan.Categories {
		if m.plan.Categories[ci].ID != r.categoryID {
			continue
		}
		for ii := range m.plan.Categories[ci].Items {
			if m.plan.Categories[ci].Items[ii].ID == r.itemID {
				return &m.plan.Categories[ci].Items[ii]
			}
		}
	}
	return nil
}

// currentAmount returns the stored amount for a row, used to prefill the
// edit field.
func (m *Model) currentAmount(r row) decimal.Decimal {
	if r.kind == rowIncome {
		for _, inc := range m.plan.IncomeItems {
			if inc.ID == r.incomeID {
				return inc.Amount
			}
		}
		return decimal.Zero
	}
	if item := m.findItem(r); item != nil {
		return item.Amount
	}
	return decimal.Zero
}
