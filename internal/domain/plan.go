package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrAutoCalculatedItem is returned for direct amount edits against an
	// item whose amount the engine derives.
	ErrAutoCalculatedItem = errors.New("amount of an auto-calculated item cannot be edited")

	ErrCategoryNotFound = errors.New("expense category not found")
	ErrItemNotFound     = errors.New("expense item not found")
	ErrIncomeNotFound   = errors.New("income item not found")
)

// CalculationType tags an expense item whose amount is derived by the
// engine rather than entered by the user. An empty value means the item is
// manual and its amount is authoritative.
type CalculationType string

const (
	// CalcSeguro derives the amount as a flat percentage of gross income.
	CalcSeguro CalculationType = "seguro"
	// CalcRenta derives the amount through the progressive tax brackets.
	CalcRenta CalculationType = "renta"
)

// IncomeItem is a single income source. Total income is the sum over all
// income items.
type IncomeItem struct {
	ID     int             `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// ExpenseItem is one budget line inside a category. For auto-calculated
// items (CalculationType non-empty) Amount is a cache of the last derived
// value and is overwritten on every recomputation.
type ExpenseItem struct {
	ID              int             `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Amount          decimal.Decimal `yaml:"amount" json:"amount"`
	CalculationType CalculationType `yaml:"calculation_type,omitempty" json:"calculationType,omitempty"`
}

// IsAutoCalculated reports whether the engine owns this item's amount.
func (i ExpenseItem) IsAutoCalculated() bool {
	return i.CalculationType != ""
}

// ExpenseCategory groups expense items. Item order is display order only.
type ExpenseCategory struct {
	ID    string        `yaml:"id" json:"id"`
	Name  string        `yaml:"name" json:"name"`
	Items []ExpenseItem `yaml:"items" json:"items"`
}

// HasAutoItems reports whether any item in the category is auto-calculated.
func (c ExpenseCategory) HasAutoItems() bool {
	for _, item := range c.Items {
		if item.IsAutoCalculated() {
			return true
		}
	}
	return false
}

// Plan is one month's editable budget: income sources and expense
// categories. All derived numbers live in Distribution, not here.
type Plan struct {
	IncomeItems []IncomeItem      `yaml:"income" json:"income"`
	Categories  []ExpenseCategory `yaml:"categories" json:"categories"`
}

// TotalIncome sums all income items.
func (p *Plan) TotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.IncomeItems {
		total = total.Add(item.Amount)
	}
	return total
}

// AddCategory appends an empty category and returns its slug id.
func (p *Plan) AddCategory(name string) string {
	id := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	p.Categories = append(p.Categories, ExpenseCategory{
		ID:   id,
		Name: strings.ToUpper(strings.TrimSpace(name)),
	})
	return id
}

// RemoveCategory deletes a category and all its items. Removing a category
// holding the last seguro/renta item silently stops that deduction from
// being computed; that is accepted behavior, not guarded against.
func (p *Plan) RemoveCategory(id string) error {
	for i, cat := range p.Categories {
		if cat.ID == id {
			p.Categories = append(p.Categories[:i], p.Categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}

// AddItem appends a manual item to a category and returns its id, one past
// the highest item id in the plan.
func (p *Plan) AddItem(categoryID, name string) (int, error) {
	cat := p.category(categoryID)
	if cat == nil {
		return 0, ErrCategoryNotFound
	}
	id := p.nextItemID()
	cat.Items = append(cat.Items, ExpenseItem{ID: id, Name: name})
	return id, nil
}

// RemoveItem deletes an item from a category.
func (p *Plan) RemoveItem(categoryID string, itemID int) error {
	cat := p.category(categoryID)
	if cat == nil {
		return ErrCategoryNotFound
	}
	for i, item := range cat.Items {
		if item.ID == itemID {
			cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// RenameItem changes an item's label.
func (p *Plan) RenameItem(categoryID string, itemID int, name string) error {
	item, err := p.item(categoryID, itemID)
	if err != nil {
		return err
	}
	item.Name = name
	return nil
}

// SetItemAmount writes a manual item's amount. Auto-calculated items are
// read-only here and the write is rejected.
func (p *Plan) SetItemAmount(categoryID string, itemID int, amount decimal.Decimal) error {
	item, err := p.item(categoryID, itemID)
	if err != nil {
		return err
	}
	if item.IsAutoCalculated() {
		return ErrAutoCalculatedItem
	}
	item.Amount = amount
	return nil
}

// SetIncomeAmount writes an income item's amount.
func (p *Plan) SetIncomeAmount(itemID int, amount decimal.Decimal) error {
	for i := range p.IncomeItems {
		if p.IncomeItems[i].ID == itemID {
			p.IncomeItems[i].Amount = amount
			return nil
		}
	}
	return ErrIncomeNotFound
}

// ResetForNewMonth zeroes all income and manual item amounts. Auto items
// keep their cached amounts; the next recomputation overwrites them anyway.
func (p *Plan) ResetForNewMonth() {
	for i := range p.IncomeItems {
		p.IncomeItems[i].Amount = decimal.Zero
	}
	for ci := range p.Categories {
		for ii := range p.Categories[ci].Items {
			if !p.Categories[ci].Items[ii].IsAutoCalculated() {
				p.Categories[ci].Items[ii].Amount = decimal.Zero
			}
		}
	}
}

func (p *Plan) category(id string) *ExpenseCategory {
	for i := range p.Categories {
		if p.Categories[i].ID == id {
			return &p.Categories[i]
		}
	}
	return nil
}

func (p *Plan) item(categoryID string, itemID int) (*ExpenseItem, error) {
	cat := p.category(categoryID)
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	for i := range cat.Items {
		if cat.Items[i].ID == itemID {
			return &cat.Items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func (p *Plan) nextItemID() int {
	max := 0
	for _, cat := range p.Categories {
		for _, item := range cat.Items {
			if item.ID > max {
				max = item.ID
			}
		}
	}
	return max + 1
}

// DefaultPlan builds the starter plan the original application ships with:
// a deductions category carrying the two auto-calculated legal items plus
// empty basics, discretionary and savings categories.
func DefaultPlan() *Plan {
	return &Plan{
		IncomeItems: []IncomeItem{
			{ID: 1, Name: "SALARIO"},
		},
		Categories: []ExpenseCategory{
			{
				ID:   "deducciones",
				Name: "DEDUCCIONES",
				Items: []ExpenseItem{
					{ID: 1, Name: "SEGURO", CalculationType: CalcSeguro},
					{ID: 2, Name: "RENTA", CalculationType: CalcRenta},
				},
			},
			{ID: "necesidades", Name: "NECESIDADES BASICAS"},
			{ID: "gastos", Name: "GASTOS PRESINDIBLES"},
			{ID: "ahorro", Name: "AHORRO"},
		},
	}
}
