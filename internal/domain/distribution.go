package domain

import (
	"github.com/shopspring/decimal"
)

// ItemResult is one expense line after recomputation: the effective amount
// (derived for auto items, as entered otherwise) and its share of income.
type ItemResult struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	CalculationType CalculationType `json:"calculationType,omitempty"`
}

// AutoCalculated reports whether the amount came from the engine.
func (r ItemResult) AutoCalculated() bool {
	return r.CalculationType != ""
}

// CategoryResult aggregates one category's items after recomputation.
type CategoryResult struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Items      []ItemResult    `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Distribution is the full derived output of one recomputation. It is a
// fresh value on every call; nothing in it is authoritative input.
type Distribution struct {
	Period           Period           `json:"period"`
	TotalIncome      decimal.Decimal  `json:"totalIncome"`
	CalculatedSeguro decimal.Decimal  `json:"calculatedSeguro"`
	CalculatedRenta  decimal.Decimal  `json:"calculatedRenta"`
	Categories       []CategoryResult `json:"categories"`
	TotalExpenses    decimal.Decimal  `json:"totalExpenses"`
	Remaining        decimal.Decimal  `json:"remaining"`
	PercentAllocated decimal.Decimal  `json:"percentAllocated"`
}

// OverAllocated reports whether expenses exceed income. The caller surfaces
// this as a warning state.
func (d *Distribution) OverAllocated() bool {
	return d.Remaining.IsNegative()
}

// DistributionMapping is one row of the flattened distribution handed to
// the transaction-posting layer: an item with a positive amount awaiting a
// destination account and category.
type DistributionMapping struct {
	ItemID       int             `json:"itemId"`
	ItemName     string          `json:"itemName"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// Mappings flattens the distribution into rows for every item with a
// positive amount, in category and item order.
func (d *Distribution) Mappings() []DistributionMapping {
	var mappings []DistributionMapping
	for _, cat := range d.Categories {
		for _, item := range cat.Items {
			if item.Amount.GreaterThan(decimal.Zero) {
				mappings = append(mappings, DistributionMapping{
					ItemID:       item.ID,
					ItemName:     item.Name,
					CategoryName: cat.Name,
					Amount:       item.Amount,
				})
			}
		}
	}
	return mappings
}
