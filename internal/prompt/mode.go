package prompt

import "strings"

// Mode is the operating persona governing tone, priorities, and required
// behaviors of a generated document.
type Mode string

const (
	ModeScout       Mode = "scout"
	ModeCoach       Mode = "coach"
	ModeAnalyst     Mode = "analyst"
	ModeGM          Mode = "gm"
	ModeAgent       Mode = "agent"
	ModeParent      Mode = "parent"
	ModeSkillCoach  Mode = "skill_coach"
	ModeMentalCoach Mode = "mental_coach"
	ModeBroadcast   Mode = "broadcast"
	ModeProducer    Mode = "producer"
)

// DefaultMode is the terminal fallback when no resolution signal matches.
const DefaultMode = ModeCoach

// AllModes lists every valid operating mode.
var AllModes = []Mode{
	ModeScout, ModeCoach, ModeAnalyst, ModeGM, ModeAgent,
	ModeParent, ModeSkillCoach, ModeMentalCoach, ModeBroadcast, ModeProducer,
}

var validModes = buildModeSet()

func buildModeSet() map[Mode]bool {
	set := make(map[Mode]bool, len(AllModes))
	for _, m := range AllModes {
		set[m] = true
	}
	return set
}

// IsValidMode reports whether m is a member of the closed mode set.
func IsValidMode(m Mode) bool {
	return validModes[m]
}

// ResolveMode picks exactly one operating mode from the supplied signals.
// Resolution order: a valid explicit mode wins, otherwise a known template's
// primary mode, otherwise the user role mapping, otherwise DefaultMode.
// The function is total: it never fails, unknown values degrade to the default.
func (e *Engine) ResolveMode(explicitMode, templateID, userRole string) Mode {
	if m := Mode(normalizeKey(explicitMode)); validModes[m] {
		return m
	}
	if tpl, ok := e.reg.Templates[normalizeKey(templateID)]; ok {
		return tpl.PrimaryMode
	}
	if m, ok := e.reg.RoleModes[normalizeKey(userRole)]; ok {
		return m
	}
	return DefaultMode
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
