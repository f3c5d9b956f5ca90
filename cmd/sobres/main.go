package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sobres/envelope-planner/internal/calculation"
	"github.com/sobres/envelope-planner/internal/config"
	"github.com/sobres/envelope-planner/internal/domain"
	"github.com/sobres/envelope-planner/internal/output"
	"github.com/sobres/envelope-planner/internal/store"
	"github.com/sobres/envelope-planner/internal/tui"
)

// slogLogger adapts the process slog handler to calculation.Logger.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sobres",
	Short: "Monthly envelope budget planner",
	Long:  "Percentage based budget planner with Costa Rican payroll deductions (CCSS and renta)",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "sobres %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintln(os.Stdout, "go:", bi.GoVersion)
			}
		},
	}
}

// dbPath resolves the config database location: flag, then SOBRES_DB, then
// a dotfile under the user home directory.
func dbPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	if p := os.Getenv("SOBRES_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sobres.db"
	}
	return filepath.Join(home, ".sobres", "planner.db")
}

// resolvePeriod picks the planner period: the --period flag wins, then the
// period in the plan file, then the current month.
func resolvePeriod(cmd *cobra.Command, pf *config.PlanFile) (domain.Period, error) {
	if key, _ := cmd.Flags().GetString("period"); key != "" {
		return domain.ParsePeriod(key)
	}
	if pf != nil {
		return pf.ResolvePeriod(time.Now()), nil
	}
	now := time.Now()
	return domain.Period{Year: now.Year(), Month: now.Month()}, nil
}

// resolveLegal picks the legal config for a period: a legal block in the
// plan file overrides everything, then the stored config, then the year
// default.
func resolveLegal(cmd *cobra.Command, pf *config.PlanFile, period domain.Period) (domain.MonthlyLegalConfig, error) {
	if pf != nil && pf.Legal != nil {
		return pf.ResolveLegal(period), nil
	}

	s, err := store.Open(dbPath(cmd))
	if err != nil {
		return domain.MonthlyLegalConfig{}, fmt.Errorf("open config store: %w", err)
	}
	defer s.Close()

	return s.Resolve(context.Background(), period)
}

func newEngine(cmd *cobra.Command) *calculation.PlannerEngine {
	engine := calculation.NewPlannerEngine()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		engine.SetLogger(slogLogger{l: slog.Default()})
	}
	return engine
}

var planCmd = &cobra.Command{
	Use:   "plan [plan-file]",
	Short: "Compute the monthly distribution for a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		pf, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		period, err := resolvePeriod(cmd, pf)
		if err != nil {
			return err
		}
		legal, err := resolveLegal(cmd, pf, period)
		if err != nil {
			return err
		}
		if err := legal.Validate(); err != nil {
			return fmt.Errorf("legal config for %s: %w", period, err)
		}

		dist := newEngine(cmd).ComputeMonth(pf.Plan(), legal, period)

		format, _ := cmd.Flags().GetString("format")
		return output.GenerateReport(os.Stdout, dist, format)
	},
}

var yearCmd = &cobra.Command{
	Use:   "year [plan-file]",
	Short: "Compute all twelve monthly distributions for a year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		pf, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}

		configs, err := loadYearConfigs(cmd, pf, year)
		if err != nil {
			return err
		}

		results, err := newEngine(cmd).ComputeYear(context.Background(), pf.Plan(), configs, year)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "%-8s %16s %16s %16s %16s\n",
			"Period", "Income", "Seguro", "Renta", "Remaining")
		for _, dist := range results {
			fmt.Fprintf(os.Stdout, "%-8s %16s %16s %16s %16s\n",
				dist.Period.Key(),
				dist.TotalIncome.StringFixed(2),
				dist.CalculatedSeguro.StringFixed(2),
				dist.CalculatedRenta.StringFixed(2),
				dist.Remaining.StringFixed(2))
		}
		return nil
	},
}

// loadYearConfigs collects the stored per-month configs for one year. A
// legal block in the plan file applies to every month instead.
func loadYearConfigs(cmd *cobra.Command, pf *config.PlanFile, year int) (map[string]domain.MonthlyLegalConfig, error) {
	configs := make(map[string]domain.MonthlyLegalConfig)

	if pf != nil && pf.Legal != nil {
		for month := time.January; month <= time.December; month++ {
			period := domain.Period{Year: year, Month: month}
			configs[period.Key()] = pf.ResolveLegal(period)
		}
		return configs, nil
	}

	s, err := store.Open(dbPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	for month := time.January; month <= time.December; month++ {
		period := domain.Period{Year: year, Month: month}
		cfg, ok, err := s.Get(ctx, period)
		if err != nil {
			return nil, err
		}
		if ok {
			configs[period.Key()] = cfg
		}
	}
	return configs, nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Edit the plan interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pf *config.PlanFile
		plan := domain.DefaultPlan()
		if len(args) == 1 {
			loaded, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			pf = loaded
			plan = loaded.Plan()
		}

		period, err := resolvePeriod(cmd, pf)
		if err != nil {
			return err
		}
		legal, err := resolveLegal(cmd, pf, period)
		if err != nil {
			return err
		}

		return tui.Run(plan, legal, period)
	},
}

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "path to the config database (default $SOBRES_DB or ~/.sobres/planner.db)")
	rootCmd.PersistentFlags().String("period", "", "planner period as YYYY-MM (default: current month)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log engine activity")

	planCmd.Flags().String("format", "console", "output format: console, csv or json")
	yearCmd.Flags().Int("year", 0, "year to compute (default: current year)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(bracketsCmd())
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
