package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrBracketFloor is returned when a mutation would leave fewer than
// MinBrackets tax brackets in a config. The bracket set is left unchanged.
var ErrBracketFloor = errors.New("a legal config must keep at least 2 tax brackets")

// ErrBracketNotFound is returned when a bracket id does not exist in the set.
var ErrBracketNotFound = errors.New("tax bracket not found")

// MinBrackets is the smallest bracket set a config may hold.
const MinBrackets = 2

// TaxBracket is one contiguous income range with a single marginal rate.
// MaxAmount nil means the bracket is unbounded (the top bracket).
// Percentage is expressed 0-100, not as a fraction.
type TaxBracket struct {
	ID         int              `yaml:"id" json:"id"`
	MinAmount  decimal.Decimal  `yaml:"min_amount" json:"minAmount"`
	MaxAmount  *decimal.Decimal `yaml:"max_amount,omitempty" json:"maxAmount,omitempty"`
	Percentage decimal.Decimal  `yaml:"percentage" json:"percentage"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.MaxAmount == nil
}

// MonthlyLegalConfig holds the legal-deduction parameters for one period:
// the flat social-insurance percentage and the progressive tax brackets.
type MonthlyLegalConfig struct {
	SeguroPercentage decimal.Decimal `yaml:"seguro_percentage" json:"seguroPercentage"`
	TaxBrackets      []TaxBracket    `yaml:"tax_brackets" json:"taxBrackets"`
}

// Period identifies one planner month.
type Period struct {
	Year  int        `yaml:"year" json:"year"`
	Month time.Month `yaml:"month" json:"month"`
}

// Key returns the canonical storage key for the period, e.g. "2026-03".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) String() string {
	return p.Key()
}

// ParsePeriod parses a "YYYY-MM" key back into a Period.
func ParsePeriod(key string) (Period, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", key, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// DefaultSeguroPercentage is the CCSS payroll deduction applied to a freshly
// created config.
var DefaultSeguroPercentage = decimal.NewFromFloat(10.67)

// DefaultBrackets2025 returns the Costa Rica income tax brackets in force
// before 2026. Amounts are monthly colones.
func DefaultBrackets2025() []TaxBracket {
	return []TaxBracket{
		{ID: 1, MinAmount: decimal.Zero, MaxAmount: decPtr(863000), Percentage: decimal.Zero},
		{ID: 2, MinAmount: decimal.NewFromInt(863000), MaxAmount: decPtr(1267000), Percentage: decimal.NewFromInt(10)},
		{ID: 3, MinAmount: decimal.NewFromInt(1267000), MaxAmount: decPtr(2223000), Percentage: decimal.NewFromInt(15)},
		{ID: 4, MinAmount: decimal.NewFromInt(2223000), MaxAmount: decPtr(4445000), Percentage: decimal.NewFromInt(20)},
		{ID: 5, MinAmount: decimal.NewFromInt(4445000), MaxAmount: nil, Percentage: decimal.NewFromInt(25)},
	}
}

// DefaultBrackets2026 returns the Costa Rica income tax brackets for 2026
// and later years.
func DefaultBrackets2026() []TaxBracket {
	return []TaxBracket{
		{ID: 1, MinAmount: decimal.Zero, MaxAmount: decPtr(918000), Percentage: decimal.Zero},
		{ID: 2, MinAmount: decimal.NewFromInt(918000), MaxAmount: decPtr(1347000), Percentage: decimal.NewFromInt(10)},
		{ID: 3, MinAmount: decimal.NewFromInt(1347000), MaxAmount: decPtr(2364000), Percentage: decimal.NewFromInt(15)},
		{ID: 4, MinAmount: decimal.NewFromInt(2364000), MaxAmount: decPtr(4727000), Percentage: decimal.NewFromInt(20)},
		{ID: 5, MinAmount: decimal.NewFromInt(4727000), MaxAmount: nil, Percentage: decimal.NewFromInt(25)},
	}
}

// DefaultLegalConfig builds the jurisdiction default for a year: the 2026
// bracket preset for 2026 and later, the 2025 preset before that.
func DefaultLegalConfig(year int) MonthlyLegalConfig {
	brackets := DefaultBrackets2025()
	if year >= 2026 {
		brackets = DefaultBrackets2026()
	}
	return MonthlyLegalConfig{
		SeguroPercentage: DefaultSeguroPercentage,
		TaxBrackets:      brackets,
	}
}

// ResolveLegalConfig returns the stored config for the period, or the
// computed year default when none is stored. A missing entry is never an
// error.
func ResolveLegalConfig(configs map[string]MonthlyLegalConfig, p Period) MonthlyLegalConfig {
	if cfg, ok := configs[p.Key()]; ok {
		return cfg
	}
	return DefaultLegalConfig(p.Year)
}

// AddBracket extends the bracket set. When the top bracket is unbounded a
// new bounded bracket of width 500000 is spliced in below it and the
// unbounded bracket's floor moves up by the same amount; otherwise a fresh
// unbounded bracket at 25% is appended above the current top.
func (c *MonthlyLegalConfig) AddBracket() {
	if len(c.TaxBrackets) == 0 {
		c.TaxBrackets = DefaultBrackets2026()
		return
	}

	width := decimal.NewFromInt(500000)
	newID := 0
	for _, b := range c.TaxBrackets {
		if b.ID > newID {
			newID = b.ID
		}
	}
	newID++

	last := c.TaxBrackets[len(c.TaxBrackets)-1]
	if last.Unbounded() {
		split := last.MinAmount.Add(width)
		inserted := TaxBracket{
			ID:         newID,
			MinAmount:  last.MinAmount,
			MaxAmount:  &split,
			Percentage: last.Percentage,
		}
		last.MinAmount = split
		c.TaxBrackets = append(c.TaxBrackets[:len(c.TaxBrackets)-1],
			inserted, last)
		return
	}

	c.TaxBrackets = append(c.TaxBrackets, TaxBracket{
		ID:         newID,
		MinAmount:  *last.MaxAmount,
		MaxAmount:  nil,
		Percentage: decimal.NewFromInt(25),
	})
}

// RemoveBracket deletes a bracket by id. Removal that would shrink the set
// below MinBrackets is rejected and the set is left unchanged.
func (c *MonthlyLegalConfig) RemoveBracket(id int) error {
	if len(c.TaxBrackets) <= MinBrackets {
		return ErrBracketFloor
	}
	for i, b := range c.TaxBrackets {
		if b.ID == id {
			c.TaxBrackets = append(c.TaxBrackets[:i], c.TaxBrackets[i+1:]...)
			return nil
		}
	}
	return ErrBracketNotFound
}

// UpdateBracket replaces the bounds and rate of the bracket with the given
// id. Pass max nil to make the bracket unbounded.
func (c *MonthlyLegalConfig) UpdateBracket(id int, min decimal.Decimal, max *decimal.Decimal, percentage decimal.Decimal) error {
	for i := range c.TaxBrackets {
		if c.TaxBrackets[i].ID == id {
			c.TaxBrackets[i].MinAmount = min
			c.TaxBrackets[i].MaxAmount = max
			c.TaxBrackets[i].Percentage = percentage
			return nil
		}
	}
	return ErrBracketNotFound
}

// Validate checks the config is usable: seguro percentage within 0-100 and
// a well-formed bracket set.
func (c MonthlyLegalConfig) Validate() error {
	hundred := decimal.NewFromInt(100)
	if c.SeguroPercentage.LessThan(decimal.Zero) || c.SeguroPercentage.GreaterThan(hundred) {
		return fmt.Errorf("seguro percentage must be between 0 and 100, got %s", c.SeguroPercentage)
	}
	return ValidateBrackets(c.TaxBrackets)
}

// ValidateBrackets rejects malformed bracket sets: fewer than MinBrackets,
// inverted bounds, more or less than one unbounded bracket, an unbounded
// bracket that is not the highest, or overlapping ranges. The tax
// computation itself does not guard against these; this is the load and
// mutation boundary check.
func ValidateBrackets(brackets []TaxBracket) error {
	if len(brackets) < MinBrackets {
		return ErrBracketFloor
	}

	sorted := sortedByMin(brackets)

	unbounded := 0
	for _, b := range sorted {
		if b.MinAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("bracket %d: min amount %s is negative", b.ID, b.MinAmount)
		}
		if b.Percentage.LessThan(decimal.Zero) || b.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("bracket %d: percentage %s out of range", b.ID, b.Percentage)
		}
		if b.Unbounded() {
			unbounded++
			continue
		}
		if b.MaxAmount.LessThanOrEqual(b.MinAmount) {
			return fmt.Errorf("bracket %d: max amount %s not above min amount %s", b.ID, b.MaxAmount, b.MinAmount)
		}
	}
	if unbounded != 1 {
		return fmt.Errorf("bracket set must have exactly one unbounded bracket, got %d", unbounded)
	}
	if !sorted[len(sorted)-1].Unbounded() {
		return fmt.Errorf("the unbounded bracket must have the highest min amount")
	}
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		if prev.MaxAmount != nil && sorted[i].MinAmount.LessThan(*prev.MaxAmount) {
			return fmt.Errorf("brackets %d and %d overlap", prev.ID, sorted[i].ID)
		}
	}
	return nil
}

// SortedBrackets returns a copy of the bracket set ordered by MinAmount
// ascending, the order the calculator evaluates them in.
func (c MonthlyLegalConfig) SortedBrackets() []TaxBracket {
	return sortedByMin(c.TaxBrackets)
}

func sortedByMin(brackets []TaxBracket) []TaxBracket {
	sorted := append([]TaxBracket(nil), brackets...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinAmount.LessThan(sorted[j].MinAmount)
	})
	return sorted
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
