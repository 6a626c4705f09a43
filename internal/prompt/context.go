package prompt

import "strings"

// Default context values applied when a field is unset.
const (
	DefaultLevel       = "Junior"
	DefaultDataDepth   = "basic"
	DefaultAudience    = "coach_gm"
	DefaultPerspective = "both"
)

// ReportContext is the (level, data depth, audience, perspective) tuple that
// scales report content. Perspective only matters for team-identity style
// documents, where it selects internal, external, or both framings.
type ReportContext struct {
	Level       string
	DataDepth   string
	Audience    string
	Perspective string
}

// ResolveContext substitutes defaults for unset fields. Values are not
// validated here: illegal values pass through untouched, downstream checks
// (if any) are the caller's concern.
func ResolveContext(level, dataDepth, audience string) ReportContext {
	return ReportContext{
		Level:       orDefault(level, DefaultLevel),
		DataDepth:   orDefault(dataDepth, DefaultDataDepth),
		Audience:    orDefault(audience, DefaultAudience),
		Perspective: DefaultPerspective,
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
