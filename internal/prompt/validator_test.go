package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellFormedReport builds a text that passes every check for the template.
func wellFormedReport(tpl Template) string {
	var sb strings.Builder
	for _, section := range tpl.RequiredSections {
		sb.WriteString("## " + section + "\n")
		sb.WriteString("Strong north-south skater. [OBSERVED: VID] CONFIDENCE: high\n")
		sb.WriteString("Finishing should translate. [INFERRED: STAT] CONFIDENCE: medium\n\n")
	}
	return sb.String()
}

func TestValidateResponse_FullCoveragePasses(t *testing.T) {
	e := newTestEngine(t)
	tpl, ok := e.Template("pro_skater")
	require.True(t, ok)

	report := e.ValidateResponse(wellFormedReport(tpl), ModeScout, "pro_skater")

	assert.True(t, report.Valid)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.MissingSections)
}

func TestValidateResponse_RemovingOneSectionFlagsExactlyThatSection(t *testing.T) {
	e := newTestEngine(t)
	tpl, ok := e.Template("pro_skater")
	require.True(t, ok)

	text := wellFormedReport(tpl)
	text = strings.ReplaceAll(text, "Hockey Sense", "Hockey Brain")

	report := e.ValidateResponse(text, ModeScout, "pro_skater")

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"Hockey Sense"}, report.MissingSections)
}

func TestValidateResponse_SectionMatchIsCaseInsensitiveSubstring(t *testing.T) {
	e := newTestEngine(t)
	tpl, ok := e.Template("pro_skater")
	require.True(t, ok)

	text := strings.ToUpper(wellFormedReport(tpl))
	report := e.ValidateResponse(text, ModeScout, "pro_skater")

	assert.Empty(t, report.MissingSections)
}

func TestValidateResponse_UnknownTemplateSkipsSectionCheck(t *testing.T) {
	e := newTestEngine(t)

	text := "Short note. [OBSERVED: LIVE] CONFIDENCE: high"
	report := e.ValidateResponse(text, ModeScout, "not_a_template")

	assert.Empty(t, report.MissingSections)
	assert.True(t, report.Valid)
}

func TestValidateResponse_MissingSectionWarningCappedAtFive(t *testing.T) {
	e := newTestEngine(t)
	tpl, ok := e.Template("pro_skater")
	require.True(t, ok)
	require.Greater(t, len(tpl.RequiredSections), 5)

	report := e.ValidateResponse("[OBSERVED: VID] CONFIDENCE: high, nothing else", ModeScout, "pro_skater")

	assert.Len(t, report.MissingSections, len(tpl.RequiredSections))
	var sectionWarning string
	for _, w := range report.Warnings {
		if strings.Contains(w, "missing required sections") {
			sectionWarning = w
		}
	}
	require.NotEmpty(t, sectionWarning)
	assert.Contains(t, sectionWarning, "and 2 more")
}

func TestValidateResponse_ConfidenceTagging(t *testing.T) {
	e := newTestEngine(t)

	long := strings.Repeat("The forecheck pressure held up against top competition. ", 30)

	// Zero markers on a long text: both the missing-tag and under-tagged findings fire.
	report := e.ValidateResponse(long+"[OBSERVED: VID]", ModeProducer, "")
	assert.False(t, report.Valid)
	joined := strings.Join(report.Warnings, "\n")
	assert.Contains(t, joined, "no CONFIDENCE tags")
	assert.Contains(t, joined, "under-tagged")

	// Two well-formed markers never trigger either finding.
	tagged := long + "[OBSERVED: VID] CONFIDENCE: High ... CONFIDENCE: low"
	report = e.ValidateResponse(tagged, ModeProducer, "")
	joined = strings.Join(report.Warnings, "\n")
	assert.NotContains(t, joined, "CONFIDENCE tags")
	assert.NotContains(t, joined, "under-tagged")

	// One marker on a short text satisfies the base requirement.
	report = e.ValidateResponse("Quick note. [INFERRED: STAT] CONFIDENCE: medium", ModeProducer, "")
	assert.True(t, report.Valid)
}

func TestValidateResponse_EvidenceLabeling(t *testing.T) {
	e := newTestEngine(t)

	report := e.ValidateResponse("He skates well. CONFIDENCE: high", ModeProducer, "")
	assert.Contains(t, strings.Join(report.Warnings, "\n"), "no evidence labels")

	for _, marker := range []string{"[OBSERVED: VID]", "[INFERRED: STAT]", "[NO DATA: INTV]", "[observed: live]"} {
		report = e.ValidateResponse("Claim. "+marker+" CONFIDENCE: high", ModeProducer, "")
		assert.NotContains(t, strings.Join(report.Warnings, "\n"), "no evidence labels", "marker %s", marker)
	}

	// A marker without a source code from the fixed set does not count.
	report = e.ValidateResponse("Claim. [OBSERVED: TWITTER] CONFIDENCE: high", ModeProducer, "")
	assert.Contains(t, strings.Join(report.Warnings, "\n"), "no evidence labels")
}

func TestValidateResponse_SourceTagsOnlyForLongAnalystScoutCoach(t *testing.T) {
	e := newTestEngine(t)

	untagged := strings.Repeat("Matchup usage trended heavier as the season progressed. ", 12) +
		"CONFIDENCE: high CONFIDENCE: medium"
	require.Greater(t, len(untagged), sourceTagMinChars)

	report := e.ValidateResponse(untagged, ModeAnalyst, "")
	assert.Contains(t, strings.Join(report.Warnings, "\n"), "source codes")

	// A bare bracketed code satisfies the check, and so does a code carried
	// inside an evidence label.
	report = e.ValidateResponse(untagged+" [STAT]", ModeAnalyst, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "source codes")

	report = e.ValidateResponse(untagged+" [OBSERVED: VID]", ModeAnalyst, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "source codes")

	// Producer mode is exempt regardless of length.
	report = e.ValidateResponse(untagged, ModeProducer, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "source codes")

	// Short texts are exempt.
	short := "Tidy summary. CONFIDENCE: high"
	report = e.ValidateResponse(short, ModeAnalyst, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "source codes")
}

func TestValidateResponse_JargonForParents(t *testing.T) {
	e := newTestEngine(t)
	base := "His Corsi improved a lot this season. [OBSERVED: STAT] CONFIDENCE: high"

	report := e.ValidateResponse(base, ModeParent, "")
	assert.Contains(t, strings.Join(report.Warnings, "\n"), "Corsi")

	explained := "His Corsi (shot attempt share) improved a lot this season. [OBSERVED: STAT] CONFIDENCE: high"
	report = e.ValidateResponse(explained, ModeParent, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "unexplained jargon")

	viaMeaning := "His Corsi, meaning shot attempt share, improved. [OBSERVED: STAT] CONFIDENCE: high"
	report = e.ValidateResponse(viaMeaning, ModeParent, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "unexplained jargon")

	// Only the parent persona is held to the jargon table.
	report = e.ValidateResponse(base, ModeScout, "")
	assert.NotContains(t, strings.Join(report.Warnings, "\n"), "unexplained jargon")
}

func TestValidateResponse_JargonExplanationMustBeInWindow(t *testing.T) {
	e := newTestEngine(t)

	farAway := "His Corsi improved. " + strings.Repeat("Great season overall. ", 5) +
		"(shot attempt share) [OBSERVED: STAT] CONFIDENCE: high"
	report := e.ValidateResponse(farAway, ModeParent, "")
	assert.Contains(t, strings.Join(report.Warnings, "\n"), "Corsi")
}

func TestValidateResponse_NeverPanicsOnDegenerateInput(t *testing.T) {
	e := newTestEngine(t)

	for _, text := range []string{"", " ", "\x00", strings.Repeat("a", 5000)} {
		assert.NotPanics(t, func() {
			e.ValidateResponse(text, ModeParent, "pro_skater")
		})
	}
}
