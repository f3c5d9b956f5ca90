package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sobres/envelope-planner/internal/domain"
)

// PlanFile is the YAML document the CLI and TUI load: one month's plan,
// optionally pinned to a period and carrying a legal-config override.
type PlanFile struct {
	Period     string                     `yaml:"period,omitempty"`
	Income     []domain.IncomeItem        `yaml:"income"`
	Categories []domain.ExpenseCategory   `yaml:"categories"`
	Legal      *domain.MonthlyLegalConfig `yaml:"legal,omitempty"`
}

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a plan document from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlanFile(&pf); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &pf, nil
}

// ValidatePlanFile validates the loaded plan document.
func (ip *InputParser) ValidatePlanFile(pf *PlanFile) error {
	if pf.Period != "" {
		if _, err := domain.ParsePeriod(pf.Period); err != nil {
			return err
		}
	}

	incomeIDs := make(map[int]bool)
	for i, item := range pf.Income {
		if item.Name == "" {
			return fmt.Errorf("income item %d: name is required", i)
		}
		if item.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("income item %q: amount must not be negative", item.Name)
		}
		if incomeIDs[item.ID] {
			return fmt.Errorf("income item %q: duplicate id %d", item.Name, item.ID)
		}
		incomeIDs[item.ID] = true
	}

	categoryIDs := make(map[string]bool)
	itemIDs := make(map[int]bool)
	for i, cat := range pf.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %d: id is required", i)
		}
		if categoryIDs[cat.ID] {
			return fmt.Errorf("category %q: duplicate id", cat.ID)
		}
		categoryIDs[cat.ID] = true

		for _, item := range cat.Items {
			if err := ip.validateItem(cat.ID, item); err != nil {
				return err
			}
			if itemIDs[item.ID] {
				return fmt.Errorf("category %q: duplicate item id %d", cat.ID, item.ID)
			}
			itemIDs[item.ID] = true
		}
	}

	if pf.Legal != nil {
		if err := pf.Legal.Validate(); err != nil {
			return fmt.Errorf("legal config validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateItem(categoryID string, item domain.ExpenseItem) error {
	if item.Name == "" {
		return fmt.Errorf("category %q: item %d: name is required", categoryID, item.ID)
	}
	switch item.CalculationType {
	case "", domain.CalcSeguro, domain.CalcRenta:
	default:
		return fmt.Errorf("category %q: item %q: unknown calculation type %q",
			categoryID, item.Name, item.CalculationType)
	}
	if !item.IsAutoCalculated() && item.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("category %q: item %q: amount must not be negative", categoryID, item.Name)
	}
	return nil
}

// Plan converts the document into an editable plan.
func (pf *PlanFile) Plan() *domain.Plan {
	return &domain.Plan{
		IncomeItems: append([]domain.IncomeItem(nil), pf.Income...),
		Categories:  append([]domain.ExpenseCategory(nil), pf.Categories...),
	}
}

// ResolvePeriod returns the document's pinned period, or the period of now
// when the document has none.
func (pf *PlanFile) ResolvePeriod(now time.Time) domain.Period {
	if pf.Period != "" {
		if p, err := domain.ParsePeriod(pf.Period); err == nil {
			return p
		}
	}
	return domain.Period{Year: now.Year(), Month: now.Month()}
}

// ResolveLegal returns the document's legal override, or the period's
// jurisdiction default.
func (pf *PlanFile) ResolveLegal(period domain.Period) domain.MonthlyLegalConfig {
	if pf.Legal != nil {
		return *pf.Legal
	}
	return domain.DefaultLegalConfig(period.Year)
}
