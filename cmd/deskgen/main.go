// ABOUTME: Entry point for the deskgen synthetic helpdesk dataset generator.
// ABOUTME: Wires config, logging, the stage pipeline, the SQLite export and the CSV converter.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	_ "github.com/2389/deskgen/internal/calls" // Register calls stage
	"github.com/2389/deskgen/internal/config"
	"github.com/2389/deskgen/internal/convert"
	_ "github.com/2389/deskgen/internal/customers" // Register customers stage
	"github.com/2389/deskgen/internal/dataset"
	_ "github.com/2389/deskgen/internal/employees" // Register employees stage
	"github.com/2389/deskgen/internal/logging"
	_ "github.com/2389/deskgen/internal/metrics" // Register metrics stage
	"github.com/2389/deskgen/internal/pipeline"
	"github.com/2389/deskgen/internal/seed"
	"github.com/2389/deskgen/internal/store"
	_ "github.com/2389/deskgen/internal/tickets" // Register tickets stage
)

var (
	cfgFile  string
	dataDir  string
	seedFlag int64
	logLevel string
	dbPath   string
	sample   int

	runsStage  string
	runsFailed bool
	runsLimit  int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deskgen",
		Short: "Synthetic helpdesk dataset generator",
		Long: `deskgen produces a linked, synthetic helpdesk dataset as CSV files:

  zendesk_customers.csv   organizations (faith, school, nonprofit, childcare, community_ed)
  zendesk_employees.csv   3-5 staff per organization
  zendesk_tickets.csv     support tickets with templated descriptions
  call_transcripts.csv    phone calls for a subset of tickets
  ticket_metrics.csv      one operational metrics row per ticket

Every stage reads the files of the stages before it. Pass --seed for a
reproducible dataset; without one a clock seed is picked and logged.

Quick Start:
  deskgen run --seed 42             # Generate everything into ./data
  deskgen tickets                   # Regenerate tickets only
  deskgen export --db deskgen.db    # Load the CSVs into SQLite`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./deskgen.yaml or ./configs/deskgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the CSV files (default: data)")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "Random seed; 0 picks one from the clock")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	stageCmds := []struct {
		name  string
		short string
		long  string
	}{
		{"customers", "Generate or top up organizations",
			`Generate organizations up to the configured per-type targets.

Existing rows in zendesk_customers.csv are kept; only missing organizations are
added, and the total never exceeds customers.cap. Names and contact emails stay
unique across the whole file.`},
		{"employees", "Generate staff for every organization",
			`Generate 3-5 employees per organization with titles, roles, departments and
permissions. Exactly one employee per organization is the primary contact.

Requires zendesk_customers.csv.`},
		{"tickets", "Generate support tickets",
			`Generate tickets for every organization, scaled by size and tier.

Descriptions come from category templates. With openai.enabled and an
OPENAI_API_KEY the templated descriptions are rewritten by the model; any batch
the model cannot rewrite keeps its templated text.

Requires zendesk_customers.csv and zendesk_employees.csv.`},
		{"calls", "Generate call transcripts",
			`Select tickets that involved a phone call and synthesize a transcript,
duration, agent and post-call satisfaction for each.

Requires zendesk_tickets.csv, zendesk_customers.csv and zendesk_employees.csv.`},
		{"metrics", "Generate ticket metrics",
			`Derive one metrics row per ticket. When call_transcripts.csv exists, call
durations shape resolution times.

Requires zendesk_tickets.csv and zendesk_customers.csv.`},
	}
	for _, sc := range stageCmds {
		name := sc.name
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: sc.short,
			Long:  sc.long,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStages(cmd, []string{name})
			},
		})
	}

	runCmd := &cobra.Command{
		Use:   "run [stage...]",
		Short: "Run the whole pipeline or selected stages",
		Long: `Run stages in dependency order: customers, employees, tickets, calls, metrics.

Usage:
  deskgen run                    # Every stage
  deskgen run tickets calls      # Selected stages, still in pipeline order

With store.path set (or --db), every executed stage is recorded in the
generation_runs table under one run id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, args)
		},
	}
	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file for the run log (overrides store.path)")

	convertCmd := &cobra.Command{
		Use:   "convert <csv_file> [json_file]",
		Short: "Convert a CSV file to JSON",
		Long: `Convert any CSV file to a JSON document with a metadata block and a records
array. Records keep the CSV column order. All-digit cells become integers,
monthly_revenue becomes a float and payment_methods lists are parsed.

Usage:
  deskgen convert data/zendesk_customers.csv
  deskgen convert data/zendesk_customers.csv customers.json --sample=10`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runConvert,
	}
	convertCmd.Flags().IntVar(&sample, "sample", 0, "Only convert the first N records")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Load the generated CSVs into SQLite",
		Long: `Replace the dataset tables of a SQLite database with the current CSV files,
in a single transaction. ticket_metrics.csv and call_transcripts.csv are
optional; the other files are required.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	exportCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite file to write (default: store.path, then deskgen.db)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recorded generation runs",
		Long: `List the stage executions recorded by 'deskgen run --db', newest first,
followed by totals over the whole run log.

Usage:
  deskgen runs --db deskgen.db
  deskgen runs --db deskgen.db --stage tick --failed --limit 5`,
		Args: cobra.NoArgs,
		RunE: runRuns,
	}
	runsCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite run log (default: store.path, then deskgen.db)")
	runsCmd.Flags().StringVar(&runsStage, "stage", "", "Only stages whose name starts with this prefix")
	runsCmd.Flags().BoolVar(&runsFailed, "failed", false, "Only failed stages")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of entries")

	rootCmd.AddCommand(runCmd, convertCmd, exportCmd, runsCmd)
	return rootCmd
}

// loadConfig reads configuration and applies the global flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seedFlag
	}
	if flags.Changed("log-level") {
		cfg.Logger.Level = logLevel
	}
	if flags.Lookup("db") != nil && flags.Changed("db") {
		cfg.Store.Path = dbPath
	}
	return cfg, nil
}

func runStages(cmd *cobra.Command, names []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Init(cfg.Logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	stages, err := pipeline.Select(names...)
	if err != nil {
		return err
	}

	env, err := pipeline.NewEnv(cfg, logger)
	if err != nil {
		return err
	}
	env.RunID = store.NewRunID()

	if cfg.OpenAI.Enabled {
		if gen := seed.NewGenerator(cfg.OpenAI, logger); gen.Enabled() {
			env.Rewriter = gen
		}
	}

	if cfg.Store.Path != "" {
		path, err := validateAndCleanDBPath(cfg.Store.Path)
		if err != nil {
			return err
		}
		s, err := store.New(path)
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		defer s.Close()
		env.Recorder = s
	}

	logger.Debug("loaded configuration", "config", cfg.String())
	logger.Info("starting generation", "run_id", env.RunID, "seed", env.Source.Seed(),
		"data_dir", cfg.DataDir, "stages", len(stages))

	outcomes, err := pipeline.Run(cmd.Context(), env, stages)
	for _, o := range outcomes {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", o.Stage, o.Result.Summary)
	}
	if err != nil {
		logger.Error("generation failed", "error", err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Data written to %s (seed %d)\n", cfg.DataDir, env.Source.Seed())
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := convert.Options{Sample: sample}
	if len(args) > 1 {
		opts.Output = args[1]
	}

	doc, out, err := convert.Convert(args[0], opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Converted %d records from CSV to JSON\n", doc.Metadata.TotalRecords)
	fmt.Fprintf(w, "Input:  %s\n", args[0])
	fmt.Fprintf(w, "Output: %s\n", out)
	fmt.Fprintf(w, "Organization distribution: %s\n", formatCounts(doc.Metadata.OrganizationTypes))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Init(cfg.Logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	target := cfg.Store.Path
	if target == "" {
		target = "deskgen.db"
	}
	target, err = validateAndCleanDBPath(target)
	if err != nil {
		return err
	}

	ds, err := loadDataset(dataset.Paths{Dir: cfg.DataDir})
	if err != nil {
		return err
	}

	s, err := store.New(target)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	counts, err := s.ImportDataset(cmd.Context(), ds)
	if err != nil {
		return err
	}
	logger.Info("exported dataset", "db", target, "counts", formatCounts(counts))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", formatCounts(counts), target)
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := cfg.Store.Path
	if target == "" {
		target = "deskgen.db"
	}
	target, err = validateAndCleanDBPath(target)
	if err != nil {
		return err
	}
	if target != ":memory:" {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("no run log at %s: %w", target, err)
		}
	}

	s, err := store.New(target)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	runs, err := s.GetRuns(cmd.Context(), &store.RunQuery{
		Limit:       runsLimit,
		StagePrefix: runsStage,
		FailedOnly:  runsFailed,
	})
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	stats, err := s.GetRunStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute run stats: %w", err)
	}

	w := cmd.OutOrStdout()
	for _, r := range runs {
		status := "ok"
		if r.Error != "" {
			status = "failed: " + r.Error
		}
		fmt.Fprintf(w, "%s  %s  %-9s seed=%d records=%d %dms %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), shortID(r.RunID), r.Stage, r.Seed, r.Records, r.DurationMs, status)
	}
	fmt.Fprintf(w, "%d runs, %d stages, %d failed, %d records, avg %dms per stage\n",
		stats.Runs, stats.Stages, stats.Failures, stats.TotalRecords, stats.AvgDurationMs)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// loadDataset reads every CSV. Metrics and transcripts may be absent.
func loadDataset(paths dataset.Paths) (*store.Dataset, error) {
	var ds store.Dataset
	var err error
	if ds.Organizations, err = dataset.ReadOrganizations(paths.Customers()); err != nil {
		return nil, err
	}
	if ds.Employees, err = dataset.ReadEmployees(paths.Employees()); err != nil {
		return nil, err
	}
	if ds.Tickets, err = dataset.ReadTickets(paths.Tickets()); err != nil {
		return nil, err
	}
	if ds.Metrics, err = dataset.ReadMetrics(paths.Metrics()); err != nil && !errors.Is(err, dataset.ErrMissingInput) {
		return nil, err
	}
	if ds.Transcripts, err = dataset.ReadTranscripts(paths.Transcripts()); err != nil && !errors.Is(err, dataset.ErrMissingInput) {
		return nil, err
	}
	return &ds, nil
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// validateAndCleanDBPath validates and cleans a database file path
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == ":memory:" {
		return cleanPath, nil
	}
	cleanPath = filepath.Clean(cleanPath)

	// Reject empty and root-like paths
	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	// Windows: reject bare drive letters (e.g., "C:", "D:")
	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	// never write next to VCS metadata or the CSV inputs themselves
	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range []string{".git", ".svn", ".env"} {
		if strings.Contains(lowerPath, pattern) {
			return "", fmt.Errorf("database path cannot contain '%s'", pattern)
		}
	}
	if strings.HasSuffix(lowerPath, ".csv") {
		return "", fmt.Errorf("database path cannot be a .csv file")
	}

	return cleanPath, nil
}
