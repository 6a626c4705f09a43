package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationReport is the outcome of the post-hoc response checks. All
// findings are advisory: the report never blocks delivery of the document.
type ValidationReport struct {
	Valid           bool     `json:"valid"`
	Warnings        []string `json:"warnings"`
	MissingSections []string `json:"missing_sections"`
}

const (
	longReportChars   = 1000
	sourceTagMinChars = 500
	jargonWindowChars = 60
	warningDetailCap  = 5
)

var (
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(high|medium|low)`)
	evidenceRe   = regexp.MustCompile(`(?i)\[(OBSERVED|INFERRED|NO DATA):\s*(VID|LIVE|STAT|INTV|MED)\]`)
	sourceTagRe  = regexp.MustCompile(`(?i)\[(?:(?:OBSERVED|INFERRED|NO DATA):\s*)?(VID|LIVE|STAT|INTV|MED)\]`)
)

// sourceTagModes is the mode subset whose long-form output must cite sources.
var sourceTagModes = map[Mode]bool{
	ModeAnalyst: true,
	ModeScout:   true,
	ModeCoach:   true,
}

// document is the immutable view of the text shared by every check.
type document struct {
	text     string
	lower    string
	mode     Mode
	template *Template
}

type checkResult struct {
	warnings        []string
	missingSections []string
}

// responseCheck is one independent rule evaluated against a document. Checks
// are pure functions of their input: no state, no ordering dependencies.
type responseCheck struct {
	name string
	run  func(r *Registry, doc document) checkResult
}

var responseChecks = []responseCheck{
	{"section_coverage", checkSectionCoverage},
	{"confidence_tagging", checkConfidenceTagging},
	{"evidence_labeling", checkEvidenceLabeling},
	{"source_tags", checkSourceTags},
	{"jargon_substitution", checkJargon},
}

// ValidateResponse inspects a generated document against the contract implied
// by the mode and template it was produced under. It never fails and never
// blocks: every finding is a soft warning. The text need not have been
// produced by this engine.
func (e *Engine) ValidateResponse(text string, mode Mode, templateID string) ValidationReport {
	doc := document{
		text:  text,
		lower: strings.ToLower(text),
		mode:  mode,
	}
	if tpl, ok := e.reg.Templates[normalizeKey(templateID)]; ok {
		doc.template = &tpl
	}

	report := ValidationReport{Warnings: []string{}, MissingSections: []string{}}
	for _, check := range responseChecks {
		res := check.run(e.reg, doc)
		report.Warnings = append(report.Warnings, res.warnings...)
		report.MissingSections = append(report.MissingSections, res.missingSections...)
	}
	report.Valid = len(report.Warnings) == 0
	return report
}

// checkSectionCoverage verifies every required section name appears in the
// text. The match is a deliberate case-insensitive substring search: it can
// false-positive on run-on prose and false-negative on marked-up headings,
// and downstream consumers depend on exactly that looseness.
func checkSectionCoverage(r *Registry, doc document) checkResult {
	if doc.template == nil || len(doc.template.RequiredSections) == 0 {
		return checkResult{}
	}
	var missing []string
	for _, section := range doc.template.RequiredSections {
		if !strings.Contains(doc.lower, strings.ToLower(section)) {
			missing = append(missing, section)
		}
	}
	if len(missing) == 0 {
		return checkResult{}
	}
	shown := missing
	if len(shown) > warningDetailCap {
		shown = shown[:warningDetailCap]
	}
	warning := fmt.Sprintf("report for template %q is missing required sections: %s",
		doc.template.Name, strings.Join(shown, ", "))
	if len(missing) > warningDetailCap {
		warning += fmt.Sprintf(" (and %d more)", len(missing)-warningDetailCap)
	}
	return checkResult{warnings: []string{warning}, missingSections: missing}
}

func checkConfidenceTagging(r *Registry, doc document) checkResult {
	count := len(confidenceRe.FindAllString(doc.text, -1))
	var warnings []string
	if count == 0 {
		warnings = append(warnings, "no CONFIDENCE tags found; key judgments must be graded high, medium, or low")
	}
	if len(doc.text) > longReportChars && count < 2 {
		warnings = append(warnings, "long report carries fewer than two CONFIDENCE tags; likely under-tagged")
	}
	return checkResult{warnings: warnings}
}

func checkEvidenceLabeling(r *Registry, doc document) checkResult {
	if evidenceRe.MatchString(doc.text) {
		return checkResult{}
	}
	return checkResult{warnings: []string{
		"no evidence labels found; claims must carry [OBSERVED: <code>], [INFERRED: <code>], or [NO DATA: <code>]",
	}}
}

func checkSourceTags(r *Registry, doc document) checkResult {
	if !sourceTagModes[doc.mode] || len(doc.text) <= sourceTagMinChars {
		return checkResult{}
	}
	if sourceTagRe.MatchString(doc.text) {
		return checkResult{}
	}
	return checkResult{warnings: []string{
		fmt.Sprintf("%s report over %d characters cites no bracketed source codes (VID, LIVE, STAT, INTV, MED)",
			doc.mode, sourceTagMinChars),
	}}
}

// checkJargon flags advanced-stats terms a parent-facing document uses
// without an immediate plain-language explanation.
func checkJargon(r *Registry, doc document) checkResult {
	if doc.mode != ModeParent {
		return checkResult{}
	}
	var unexplained []string
	for _, entry := range r.Jargon {
		term := strings.ToLower(entry.Term)
		idx := strings.Index(doc.lower, term)
		if idx < 0 {
			continue
		}
		start := idx + len(term)
		end := start + jargonWindowChars
		if end > len(doc.lower) {
			end = len(doc.lower)
		}
		window := doc.lower[start:end]
		if strings.Contains(window, "(") || strings.Contains(window, "meaning") {
			continue
		}
		unexplained = append(unexplained, entry.Term)
		if len(unexplained) == warningDetailCap {
			break
		}
	}
	if len(unexplained) == 0 {
		return checkResult{}
	}
	return checkResult{warnings: []string{
		fmt.Sprintf("unexplained jargon for a parent audience: %s", strings.Join(unexplained, ", ")),
	}}
}
