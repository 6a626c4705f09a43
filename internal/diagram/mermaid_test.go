package diagram

import (
	"strings"
	"testing"

	"pucksight/internal/stats"

	"github.com/stretchr/testify/assert"
)

func rosterPlayer(id int, first, last, pos string, number int) stats.RosterPlayer {
	var p stats.RosterPlayer
	p.ID = id
	p.FirstName.Default = first
	p.LastName.Default = last
	p.PositionCode = pos
	p.SweaterNumber = number
	return p
}

func TestGenerateLineupDiagram(t *testing.T) {
	m := &MermaidGenerator{}
	roster := []stats.RosterPlayer{
		rosterPlayer(1, "Auston", "Matthews", "C", 34),
		rosterPlayer(2, "Morgan", "Rielly", "D", 44),
		rosterPlayer(3, "Joseph", "Woll", "G", 60),
		rosterPlayer(4, "Mystery", "Rover", "X", 99),
	}

	out := m.GenerateLineupDiagram("TOR", roster)

	assert.True(t, strings.HasPrefix(out, "```mermaid\ngraph TD\n"))
	assert.Contains(t, out, "FWD --> P1[#34 Auston Matthews]")
	assert.Contains(t, out, "DEF --> P2[#44 Morgan Rielly]")
	assert.Contains(t, out, "G --> P3[#60 Joseph Woll]")
	assert.NotContains(t, out, "Mystery Rover", "unknown position codes are skipped")
}

func TestGenerateDevelopmentTimeline(t *testing.T) {
	m := &MermaidGenerator{}
	out := m.GenerateDevelopmentTimeline("A. Volkov", []PlanItem{
		{Title: "First three strides", Weeks: 6},
		{Title: "Net-front scanning", Weeks: 0}, // defaults to 4
	})

	assert.Contains(t, out, "title Development Plan: A. Volkov")
	assert.Contains(t, out, "First three strides :6w")
	assert.Contains(t, out, "Net-front scanning :4w")
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, `(hard) 'stop'`, sanitizeLabel("[hard] \"stop\"\n"))
}
