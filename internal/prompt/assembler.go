package prompt

import (
	"fmt"
	"strings"
)

// Composition order is a protocol, not an implementation detail: later blocks
// read as overriding earlier ones, and safety/compliance blocks must appear in
// their fixed positions to stay authoritative. The stage lists below are the
// only place that order is defined.

// minTemplateChars is the richness threshold below which a caller-supplied
// template prompt is treated as noise and dropped.
const minTemplateChars = 40

// blockSeparator joins the assembled blocks.
const blockSeparator = "\n\n"

// ReportPromptInput carries the signals for the report-generation assembler.
type ReportPromptInput struct {
	Mode             Mode
	BaseInstructions string
	TemplatePrompt   string
	TemplateName     string
	ReportType       string
	Level            string
	DataDepth        string
	Audience         string
}

// ConversationPromptInput carries the signals for the conversational assembler.
type ConversationPromptInput struct {
	Mode       Mode
	Tool       string
	PlayerAge  int
	ReportType string
	Level      string
	DataDepth  string
	Audience   string
}

// assembleInput is the normalized view both assemblers share.
type assembleInput struct {
	mode           Mode
	ctx            ReportContext
	base           string
	templatePrompt string
	templateName   string
	reportType     string
	tool           string
	playerAge      int
}

// stage is one named step of the assembly pipeline: a predicate-plus-lookup
// pair that either contributes a block or stays silent. Stages never error.
type stage struct {
	name string
	emit func(r *Registry, in assembleInput) (string, bool)
}

var reportStages = []stage{
	{"context_header", emitContextHeader},
	{"guardrails", emitGuardrails},
	{"evidence_discipline", emitEvidenceRules},
	{"mode_behavior", emitModeBlock},
	{"base_instructions", emitBaseInstructions},
	{"template_instructions", emitTemplateInstructions},
	{"compliance", emitCompliance},
	{"report_supplements", emitSupplements},
}

var conversationStages = []stage{
	{"context_header", emitContextHeader},
	{"guardrails", emitGuardrails},
	{"evidence_discipline", emitEvidenceRules},
	{"mode_behavior", emitModeBlock},
	{"conversation_memory", emitConversationMemory},
	{"mode_handoff", emitModeHandoff},
	{"broadcast_tool", emitBroadcastTool},
	{"age_guidance", emitAgeGuidance},
	{"compliance", emitCompliance},
	{"report_supplements", emitSupplements},
}

// AssembleReportPrompt produces the instruction document for one report
// generation call. The output is deterministic: identical input yields
// byte-identical output.
func (e *Engine) AssembleReportPrompt(in ReportPromptInput) string {
	return e.assemble(reportStages, assembleInput{
		mode:           in.Mode,
		ctx:            ResolveContext(in.Level, in.DataDepth, in.Audience),
		base:           in.BaseInstructions,
		templatePrompt: in.TemplatePrompt,
		templateName:   in.TemplateName,
		reportType:     normalizeKey(in.ReportType),
	})
}

// AssembleConversationPrompt produces the instruction document for one
// conversational turn.
func (e *Engine) AssembleConversationPrompt(in ConversationPromptInput) string {
	return e.assemble(conversationStages, assembleInput{
		mode:       in.Mode,
		ctx:        ResolveContext(in.Level, in.DataDepth, in.Audience),
		reportType: normalizeKey(in.ReportType),
		tool:       normalizeKey(in.Tool),
		playerAge:  in.PlayerAge,
	})
}

func (e *Engine) assemble(stages []stage, in assembleInput) string {
	if !validModes[in.mode] {
		in.mode = DefaultMode
	}
	parts := make([]string, 0, len(stages))
	for _, st := range stages {
		if block, ok := st.emit(e.reg, in); ok {
			parts = append(parts, block)
		}
	}
	return strings.Join(parts, blockSeparator)
}

func emitContextHeader(r *Registry, in assembleInput) (string, bool) {
	return fmt.Sprintf(r.ContextHeader, in.ctx.Level, in.ctx.DataDepth, in.ctx.Audience), true
}

func emitGuardrails(r *Registry, in assembleInput) (string, bool) {
	return r.Guardrails, true
}

func emitEvidenceRules(r *Registry, in assembleInput) (string, bool) {
	return r.EvidenceRules, true
}

func emitModeBlock(r *Registry, in assembleInput) (string, bool) {
	if block, ok := r.ModeBlocks[in.mode]; ok {
		return block, true
	}
	// Closed enum, should not happen; degrade to the default persona.
	return r.ModeBlocks[DefaultMode], true
}

func emitBaseInstructions(r *Registry, in assembleInput) (string, bool) {
	base := strings.TrimSpace(in.base)
	return base, base != ""
}

func emitTemplateInstructions(r *Registry, in assembleInput) (string, bool) {
	tpl := strings.TrimSpace(in.templatePrompt)
	if len(tpl) < minTemplateChars {
		return "", false
	}
	return tpl, true
}

func emitConversationMemory(r *Registry, in assembleInput) (string, bool) {
	return r.ConversationMemory, true
}

func emitModeHandoff(r *Registry, in assembleInput) (string, bool) {
	return r.ModeHandoff, true
}

func emitBroadcastTool(r *Registry, in assembleInput) (string, bool) {
	if in.mode != ModeBroadcast {
		return "", false
	}
	block, ok := r.BroadcastTools[in.tool]
	return block, ok
}

func emitAgeGuidance(r *Registry, in assembleInput) (string, bool) {
	if in.mode != ModeSkillCoach || in.playerAge <= 0 {
		return "", false
	}
	for _, tier := range r.AgeTiers {
		if in.playerAge >= tier.Min && (tier.Max == 0 || in.playerAge <= tier.Max) {
			return tier.Block, true
		}
	}
	return "", false
}

func emitCompliance(r *Registry, in assembleInput) (string, bool) {
	block, ok := r.ComplianceBlocks[in.mode]
	return block, ok
}

func emitSupplements(r *Registry, in assembleInput) (string, bool) {
	keys, ok := r.Supplements[in.reportType]
	if !ok {
		return "", false
	}
	blocks := make([]string, 0, len(keys))
	for _, key := range keys {
		blocks = append(blocks, r.SupplementBlocks[key])
	}
	return strings.Join(blocks, blockSeparator), true
}
