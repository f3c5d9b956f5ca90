package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sobres/envelope-planner/internal/domain"
	"github.com/sobres/envelope-planner/internal/output"
	"github.com/sobres/envelope-planner/internal/store"
)

// bracketsCmd manages the per-period legal configs: show the resolved
// brackets for a period, save a preset, delete an override, or list the
// periods with overrides.
func bracketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "Show or manage the tax brackets for a period",
		RunE:  runBrackets,
	}
	cmd.Flags().String("preset", "", "save a bracket preset for the period: 2025 or 2026")
	cmd.Flags().Bool("delete", false, "delete the stored config for the period")
	cmd.Flags().Bool("list", false, "list all periods with a stored config")
	return cmd
}

func runBrackets(cmd *cobra.Command, args []string) error {
	s, err := store.Open(dbPath(cmd))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	defer s.Close()
	ctx := context.Background()

	if list, _ := cmd.Flags().GetBool("list"); list {
		periods, err := s.ListPeriods(ctx)
		if err != nil {
			return err
		}
		if len(periods) == 0 {
			fmt.Fprintln(os.Stdout, "no stored configs, all periods use the year defaults")
			return nil
		}
		for _, p := range periods {
			fmt.Fprintln(os.Stdout, p)
		}
		return nil
	}

	period, err := resolvePeriod(cmd, nil)
	if err != nil {
		return err
	}

	if del, _ := cmd.Flags().GetBool("delete"); del {
		if err := s.Delete(ctx, period); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "removed stored config for %s, the year default applies\n", period)
		return nil
	}

	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		cfg := domain.MonthlyLegalConfig{SeguroPercentage: domain.DefaultSeguroPercentage}
		switch preset {
		case "2025":
			cfg.TaxBrackets = domain.DefaultBrackets2025()
		case "2026":
			cfg.TaxBrackets = domain.DefaultBrackets2026()
		default:
			return fmt.Errorf("unknown preset %q, want 2025 or 2026", preset)
		}
		if err := s.Save(ctx, period, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "saved %s preset for %s\n", preset, period)
		return nil
	}

	cfg, err := s.Resolve(ctx, period)
	if err != nil {
		return err
	}
	printLegalConfig(period, cfg)
	return nil
}

func printLegalConfig(period domain.Period, cfg domain.MonthlyLegalConfig) {
	fmt.Fprintf(os.Stdout, "Legal config for %s\n", period)
	fmt.Fprintf(os.Stdout, "Seguro: %s\n\n", output.FormatPercentage(cfg.SeguroPercentage))
	fmt.Fprintf(os.Stdout, "%-4s %16s %16s %8s\n", "ID", "From", "To", "Rate")
	for _, b := range cfg.SortedBrackets() {
		to := "unbounded"
		if !b.Unbounded() {
			to = b.MaxAmount.StringFixed(0)
		}
		fmt.Fprintf(os.Stdout, "%-4d %16s %16s %8s\n",
			b.ID, b.MinAmount.StringFixed(0), to, output.FormatPercentage(b.Percentage))
	}
}
