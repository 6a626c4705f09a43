package diagram

import (
	"fmt"
	"strings"

	"pucksight/internal/stats"
)

// MermaidGenerator renders static Mermaid diagrams embedded in report output.
type MermaidGenerator struct{}

// GenerateLineupDiagram draws a roster grouped by position as a graph TD.
func (m *MermaidGenerator) GenerateLineupDiagram(teamAbbr string, roster []stats.RosterPlayer) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph TD\n")
	fmt.Fprintf(&sb, "    TEAM[%s]\n", sanitizeLabel(teamAbbr))
	sb.WriteString("    TEAM --> FWD[Forwards]\n")
	sb.WriteString("    TEAM --> DEF[Defense]\n")
	sb.WriteString("    TEAM --> G[Goalies]\n")

	for _, p := range roster {
		group := positionGroup(p.PositionCode)
		if group == "" {
			continue
		}
		id := fmt.Sprintf("P%d", p.ID)
		label := sanitizeLabel(playerLabel(p))
		fmt.Fprintf(&sb, "    %s --> %s[%s]\n", group, id, label)
	}

	sb.WriteString("```\n")
	return sb.String()
}

// PlanItem is one development priority placed on the timeline.
type PlanItem struct {
	Title string
	Weeks int
}

// GenerateDevelopmentTimeline draws a development plan as a Mermaid gantt
// chart, one sequential block per priority.
func (m *MermaidGenerator) GenerateDevelopmentTimeline(subject string, items []PlanItem) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString("    dateFormat W\n")
	fmt.Fprintf(&sb, "    title Development Plan: %s\n", sanitizeLabel(subject))
	sb.WriteString("    section Priorities\n")

	week := 1
	for _, item := range items {
		weeks := item.Weeks
		if weeks <= 0 {
			weeks = 4
		}
		fmt.Fprintf(&sb, "    %s :%dw\n", sanitizeLabel(item.Title), weeks)
		week += weeks
	}

	sb.WriteString("```\n")
	return sb.String()
}

func positionGroup(code string) string {
	switch strings.ToUpper(code) {
	case "C", "L", "R", "LW", "RW":
		return "FWD"
	case "D":
		return "DEF"
	case "G":
		return "G"
	default:
		return ""
	}
}

func playerLabel(p stats.RosterPlayer) string {
	name := strings.TrimSpace(p.FirstName.Default + " " + p.LastName.Default)
	if p.SweaterNumber > 0 {
		return fmt.Sprintf("#%d %s", p.SweaterNumber, name)
	}
	return name
}

// sanitizeLabel strips characters that break Mermaid node labels.
func sanitizeLabel(s string) string {
	replacer := strings.NewReplacer("[", "(", "]", ")", "\"", "'", "\n", " ")
	return strings.TrimSpace(replacer.Replace(s))
}
