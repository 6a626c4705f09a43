package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pucksight/internal/llm"
	"pucksight/internal/prompt"
	"pucksight/internal/stats"
	"pucksight/internal/storage"

	"github.com/google/uuid"
)

// Store is the persistence surface the service needs.
type Store interface {
	SaveReport(ctx context.Context, r *storage.Report) error
}

// StatsProvider supplies league data for the scouting-facts digest.
type StatsProvider interface {
	PlayerLanding(ctx context.Context, playerID int) (*stats.PlayerLanding, error)
}

// Service runs the full report pipeline: resolve, assemble, generate,
// validate, persist.
type Service struct {
	engine *prompt.Engine
	gen    llm.Generator
	store  Store
	stats  StatsProvider
}

// NewService wires the pipeline. stats may be nil; reports then carry no
// league-data digest.
func NewService(engine *prompt.Engine, gen llm.Generator, store Store, statsClient StatsProvider) *Service {
	return &Service{
		engine: engine,
		gen:    gen,
		store:  store,
		stats:  statsClient,
	}
}

// GenerateParams carries one report request.
type GenerateParams struct {
	ExplicitMode     string
	TemplateID       string
	UserRole         string
	ReportType       string
	Subject          string
	PlayerID         int
	BaseInstructions string
	TemplatePrompt   string
	Level            string
	DataDepth        string
	Audience         string
}

// GenerateReport runs the pipeline once and persists the outcome. Validation
// findings never block: a report with warnings is still saved and returned.
func (s *Service) GenerateReport(ctx context.Context, p GenerateParams) (*storage.Report, error) {
	mode := s.engine.ResolveMode(p.ExplicitMode, p.TemplateID, p.UserRole)

	base := strings.TrimSpace(p.BaseInstructions)
	if p.PlayerID > 0 && s.stats != nil {
		landing, err := s.stats.PlayerLanding(ctx, p.PlayerID)
		if err != nil {
			// Degrade: the report is still assemblable without league data.
			log.Printf("⚠️ stats lookup failed for player %d: %v", p.PlayerID, err)
		} else {
			digest := stats.Digest(landing)
			if base == "" {
				base = digest
			} else {
				base = digest + "\n\n" + base
			}
		}
	}

	// Report type defaults to the template identifier: the two usually align,
	// and an unmapped type injects nothing anyway.
	reportType := p.ReportType
	if reportType == "" {
		reportType = p.TemplateID
	}

	instruction := s.engine.AssembleReportPrompt(prompt.ReportPromptInput{
		Mode:             mode,
		BaseInstructions: base,
		TemplatePrompt:   p.TemplatePrompt,
		TemplateName:     p.TemplateID,
		ReportType:       reportType,
		Level:            p.Level,
		DataDepth:        p.DataDepth,
		Audience:         p.Audience,
	})

	content, err := s.gen.Generate(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	validation := s.engine.ValidateResponse(content, mode, p.TemplateID)
	for _, warning := range validation.Warnings {
		log.Printf("⚠️ validation: %s", warning)
	}

	rec := &storage.Report{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Mode:            string(mode),
		TemplateID:      p.TemplateID,
		ReportType:      reportType,
		Subject:         p.Subject,
		Prompt:          instruction,
		Content:         content,
		Valid:           validation.Valid,
		Warnings:        validation.Warnings,
		MissingSections: validation.MissingSections,
	}
	if err := s.store.SaveReport(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return rec, nil
}

// ConverseParams carries one conversational turn request.
type ConverseParams struct {
	ExplicitMode string
	UserRole     string
	Tool         string
	PlayerAge    int
	ReportType   string
	Level        string
	DataDepth    string
	Audience     string
	Message      string
}

// Converse assembles the conversational instruction document, appends the
// user message, and returns the model answer with its validation report.
func (s *Service) Converse(ctx context.Context, p ConverseParams) (string, prompt.ValidationReport, error) {
	mode := s.engine.ResolveMode(p.ExplicitMode, "", p.UserRole)

	instruction := s.engine.AssembleConversationPrompt(prompt.ConversationPromptInput{
		Mode:       mode,
		Tool:       p.Tool,
		PlayerAge:  p.PlayerAge,
		ReportType: p.ReportType,
		Level:      p.Level,
		DataDepth:  p.DataDepth,
		Audience:   p.Audience,
	})

	full := instruction + "\n\nUSER MESSAGE:\n" + strings.TrimSpace(p.Message)
	answer, err := s.gen.Generate(ctx, full)
	if err != nil {
		return "", prompt.ValidationReport{}, fmt.Errorf("conversation turn failed: %w", err)
	}

	validation := s.engine.ValidateResponse(answer, mode, "")
	for _, warning := range validation.Warnings {
		log.Printf("⚠️ validation: %s", warning)
	}
	return answer, validation, nil
}
