package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"pucksight/internal/config"
	"pucksight/internal/diagram"
	"pucksight/internal/jobs"
	"pucksight/internal/llm"
	"pucksight/internal/prompt"
	"pucksight/internal/report"
	"pucksight/internal/stats"
	"pucksight/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pucksight",
		Short: "AI-powered Hockey Intelligence Reports",
	}
	dbPath string

	flagMode     string
	flagTemplate string
	flagType     string
	flagRole     string
	flagSubject  string
	flagPlayerID int
	flagBase     string
	flagLevel    string
	flagDepth    string
	flagAudience string
	flagOut      string
	flagTool     string
	flagAge      int
	flagTeam     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "pucksight.db", "Path to the local report database (SQLite)")

	for _, cmd := range []*cobra.Command{generateCmd, enqueueCmd} {
		cmd.Flags().StringVar(&flagMode, "mode", "", "Operating mode (scout, coach, analyst, ...)")
		cmd.Flags().StringVar(&flagTemplate, "template", "", "Report template (pro_skater, elite_profile, ...)")
		cmd.Flags().StringVar(&flagType, "type", "", "Report type (defaults to the template)")
		cmd.Flags().StringVar(&flagRole, "role", "", "Requesting user role, used when no mode is given")
		cmd.Flags().StringVar(&flagSubject, "subject", "", "Report subject (player or team name)")
		cmd.Flags().IntVar(&flagPlayerID, "player", 0, "NHL player ID to pull stats for")
		cmd.Flags().StringVar(&flagBase, "instructions", "", "Base instructions for the report")
		cmd.Flags().StringVar(&flagLevel, "level", "", "Competition level (defaults to Junior)")
		cmd.Flags().StringVar(&flagDepth, "depth", "", "Statistical depth (defaults to basic)")
		cmd.Flags().StringVar(&flagAudience, "audience", "", "Primary audience (defaults to coach_gm)")
	}
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Also export the report bundle to this JSON path")

	chatCmd.Flags().StringVar(&flagMode, "mode", "", "Operating mode")
	chatCmd.Flags().StringVar(&flagRole, "role", "", "Requesting user role")
	chatCmd.Flags().StringVar(&flagTool, "tool", "", "Broadcast tool (telestrator, between_benches, intermission_panel)")
	chatCmd.Flags().IntVar(&flagAge, "age", 0, "Player age, enables age-tier guidance in skill_coach mode")

	validateCmd.Flags().StringVar(&flagMode, "mode", "", "Mode the text was produced under")
	validateCmd.Flags().StringVar(&flagTemplate, "template", "", "Template to check required sections against")

	rosterCmd.Flags().StringVar(&flagTeam, "team", "", "Team abbreviation, e.g. TOR")
	rosterCmd.MarkFlagRequired("team")

	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output JSON path (defaults to <report-id>.json)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(modesCmd)
}

// initStore initializes the SQLite store.
func initStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(dbPath)
}

// initService wires the full report pipeline from config.
func initService(ctx context.Context, store *storage.SQLiteStore) (*report.Service, *config.Config, error) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.AI.APIKey == "" {
		return nil, nil, fmt.Errorf("AI API key not configured")
	}

	engine, err := prompt.NewEngine()
	if err != nil {
		return nil, nil, err
	}

	gen, err := llm.NewGenerator(ctx, cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return report.NewService(engine, gen, store, stats.NewClient(cfg.Stats.BaseURL)), cfg, nil
}

func generateParams() report.GenerateParams {
	return report.GenerateParams{
		ExplicitMode:     flagMode,
		TemplateID:       flagTemplate,
		UserRole:         flagRole,
		ReportType:       flagType,
		Subject:          flagSubject,
		PlayerID:         flagPlayerID,
		BaseInstructions: flagBase,
		Level:            flagLevel,
		DataDepth:        flagDepth,
		Audience:         flagAudience,
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one report and store it",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		svc, _, err := initService(ctx, store)
		if err != nil {
			log.Fatalf("Setup failed: %v\nCheck your config.yaml and API keys.", err)
		}

		fmt.Println("🚀 Generating report...")
		start := time.Now()
		rec, err := svc.GenerateReport(ctx, generateParams())
		if err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}

		fmt.Printf("✅ Report %s generated in %v.\n", rec.ID, time.Since(start).Round(time.Millisecond))
		if !rec.Valid {
			fmt.Printf("⚠️ %d validation warnings (report still delivered):\n", len(rec.Warnings))
			for _, w := range rec.Warnings {
				fmt.Printf("  - %s\n", w)
			}
		}
		fmt.Println()
		fmt.Println(rec.Content)

		if flagOut != "" {
			if err := report.SaveBundle(flagOut, report.NewBundle(rec)); err != nil {
				log.Fatalf("Failed to export bundle: %v", err)
			}
			fmt.Printf("💾 Bundle exported to %s\n", flagOut)
		}
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask one conversational question",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		svc, _, err := initService(ctx, store)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}

		answer, validation, err := svc.Converse(ctx, report.ConverseParams{
			ExplicitMode: flagMode,
			UserRole:     flagRole,
			Tool:         flagTool,
			PlayerAge:    flagAge,
			Message:      args[0],
		})
		if err != nil {
			log.Fatalf("Conversation failed: %v", err)
		}

		fmt.Println(answer)
		if !validation.Valid {
			fmt.Printf("\n⚠️ %d validation warnings.\n", len(validation.Warnings))
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an existing report file against the contract",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		engine, err := prompt.NewEngine()
		if err != nil {
			log.Fatalf("Failed to build engine: %v", err)
		}

		mode := engine.ResolveMode(flagMode, flagTemplate, "")
		result := engine.ValidateResponse(string(raw), mode, flagTemplate)

		if result.Valid {
			fmt.Println("✅ Report passes all checks.")
			return
		}
		fmt.Printf("⚠️ %d findings:\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
		if len(result.MissingSections) > 0 {
			fmt.Printf("Missing sections: %v\n", result.MissingSections)
		}
	},
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Queue a report generation job for the worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		job := &storage.Job{
			ID:               uuid.NewString(),
			Mode:             flagMode,
			TemplateID:       flagTemplate,
			ReportType:       flagType,
			Subject:          flagSubject,
			PlayerID:         flagPlayerID,
			BaseInstructions: flagBase,
			Level:            flagLevel,
			DataDepth:        flagDepth,
			Audience:         flagAudience,
		}
		if err := store.EnqueueJob(ctx, job); err != nil {
			log.Fatalf("Failed to enqueue job: %v", err)
		}
		fmt.Printf("📬 Job %s queued.\n", job.ID)
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background report worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		svc, cfg, err := initService(ctx, store)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}

		fmt.Printf("👷 Worker running with %d workers. Ctrl-C to stop.\n", cfg.Service.Workers)
		dispatcher := jobs.NewDispatcher(store, svc, cfg.Service.Workers)
		if err := dispatcher.Run(ctx); err != nil {
			log.Fatalf("Worker stopped with error: %v", err)
		}
		fmt.Println("👋 Worker stopped.")
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [report-id]",
	Short: "Export a stored report as a validated JSON bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		rec, err := store.GetReport(ctx, args[0])
		if err != nil {
			log.Fatalf("Failed to load report: %v", err)
		}

		out := flagOut
		if out == "" {
			out = rec.ID + ".json"
		}
		if err := report.SaveBundle(out, report.NewBundle(rec)); err != nil {
			log.Fatalf("Failed to export bundle: %v", err)
		}
		fmt.Printf("💾 Bundle exported to %s\n", out)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		reports, err := store.ListReports(ctx, 20)
		if err != nil {
			log.Fatalf("Failed to list reports: %v", err)
		}
		if len(reports) == 0 {
			fmt.Println("No reports yet.")
			return
		}
		for _, r := range reports {
			status := "✅"
			if !r.Valid {
				status = "⚠️"
			}
			fmt.Printf("%s %s  %s  mode=%s template=%s  %s\n",
				status, r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.TemplateID, r.Subject)
		}
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Fetch a team roster and print its lineup diagram",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig("config.yaml")
		if err != nil {
			log.Printf("⚠️ No config found, using default stats endpoint: %v", err)
			cfg = &config.Config{}
		}

		client := stats.NewClient(cfg.Stats.BaseURL)
		roster, err := client.TeamRoster(ctx, flagTeam)
		if err != nil {
			log.Fatalf("Failed to fetch roster: %v", err)
		}

		fmt.Printf("📋 %s roster: %d players.\n\n", flagTeam, len(roster))
		m := &diagram.MermaidGenerator{}
		fmt.Println(m.GenerateLineupDiagram(flagTeam, roster))
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List operating modes and report templates",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := prompt.NewEngine()
		if err != nil {
			log.Fatalf("Failed to build engine: %v", err)
		}
		reg := engine.Registry()

		fmt.Println("Operating modes:")
		for _, m := range prompt.AllModes {
			marker := ""
			if _, ok := reg.ComplianceBlocks[m]; ok {
				marker = " (compliance-required)"
			}
			fmt.Printf("  - %s%s\n", m, marker)
		}

		fmt.Println("\nTemplates:")
		ids := make([]string, 0, len(reg.Templates))
		for id := range reg.Templates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			tpl := reg.Templates[id]
			fmt.Printf("  - %s (primary %s, %d required sections)\n", id, tpl.PrimaryMode, len(tpl.RequiredSections))
		}
	},
}
