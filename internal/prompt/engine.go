package prompt

import "fmt"

// Registry is the immutable catalog of composable fragments and lookup tables.
// It is built once at startup and never mutated afterwards, so every Engine
// method is safe for concurrent use without synchronization.
type Registry struct {
	ContextHeader      string
	Guardrails         string
	EvidenceRules      string
	TrustTiers         string
	ConversationMemory string
	ModeHandoff        string
	ModeBlocks         map[Mode]string
	ComplianceBlocks   map[Mode]string
	AgeTiers           []AgeTier
	BroadcastTools     map[string]string
	SupplementBlocks   map[string]string
	Supplements        map[string][]string
	Templates          map[string]Template
	RoleModes          map[string]Mode
	Jargon             []JargonEntry
}

// Engine assembles instruction documents and validates generated responses.
type Engine struct {
	reg *Registry
}

// NewEngine builds an Engine over the compiled-in registry. It fails fast if
// the tables are internally inconsistent; a broken catalog cannot produce
// deterministic prompts and must never reach call time.
func NewEngine() (*Engine, error) {
	reg := &Registry{
		ContextHeader:      contextHeaderTemplate,
		Guardrails:         guardrailBlock,
		EvidenceRules:      evidenceBlock,
		TrustTiers:         trustTiersBlock,
		ConversationMemory: conversationMemoryBlock,
		ModeHandoff:        modeHandoffBlock,
		ModeBlocks:         modeBlocks,
		ComplianceBlocks:   complianceBlocks,
		AgeTiers:           ageTiers,
		BroadcastTools:     broadcastToolBlocks,
		SupplementBlocks:   supplementBlocks,
		Supplements:        reportTypeSupplements,
		Templates:          templates,
		RoleModes:          roleModes,
		Jargon:             jargonTable,
	}
	if err := reg.check(); err != nil {
		return nil, fmt.Errorf("prompt registry: %w", err)
	}
	return &Engine{reg: reg}, nil
}

// Registry exposes the catalog for read-only inspection (CLI listing, tests).
func (e *Engine) Registry() *Registry {
	return e.reg
}

func (r *Registry) check() error {
	for _, m := range AllModes {
		if r.ModeBlocks[m] == "" {
			return fmt.Errorf("mode %q has no behavior block", m)
		}
	}
	for m := range r.ComplianceBlocks {
		if !validModes[m] {
			return fmt.Errorf("compliance block for unknown mode %q", m)
		}
	}
	for id, tpl := range r.Templates {
		if !validModes[tpl.PrimaryMode] {
			return fmt.Errorf("template %q has unknown primary mode %q", id, tpl.PrimaryMode)
		}
		if tpl.SecondaryMode != "" && !validModes[tpl.SecondaryMode] {
			return fmt.Errorf("template %q has unknown secondary mode %q", id, tpl.SecondaryMode)
		}
		if len(tpl.RequiredSections) == 0 {
			return fmt.Errorf("template %q lists no required sections", id)
		}
	}
	for reportType, keys := range r.Supplements {
		if len(keys) == 0 {
			return fmt.Errorf("report type %q maps to an empty supplement list", reportType)
		}
		for _, key := range keys {
			if r.SupplementBlocks[key] == "" {
				return fmt.Errorf("report type %q references missing supplement block %q", reportType, key)
			}
		}
	}
	for role, m := range r.RoleModes {
		if !validModes[m] {
			return fmt.Errorf("role %q maps to unknown mode %q", role, m)
		}
	}
	for i, tier := range r.AgeTiers {
		if tier.Block == "" {
			return fmt.Errorf("age tier %q has no guidance block", tier.Label)
		}
		if tier.Max != 0 && tier.Max < tier.Min {
			return fmt.Errorf("age tier %q has inverted bounds", tier.Label)
		}
		if i > 0 {
			prev := r.AgeTiers[i-1]
			if prev.Max == 0 || tier.Min != prev.Max+1 {
				return fmt.Errorf("age tiers %q and %q overlap or leave a gap", prev.Label, tier.Label)
			}
		}
	}
	return nil
}

// Template returns the template definition for id, if known.
func (e *Engine) Template(id string) (Template, bool) {
	tpl, ok := e.reg.Templates[normalizeKey(id)]
	return tpl, ok
}
