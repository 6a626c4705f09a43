package stats

import (
	"fmt"
	"strings"
)

// Digest reshapes a player landing record into the plain-text scouting facts
// block the assembler receives as part of the base instructions. Every line is
// a fact the model can cite with a [STAT] source code.
func Digest(p *PlayerLanding) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	name := strings.TrimSpace(p.FirstName.Default + " " + p.LastName.Default)
	fmt.Fprintf(&sb, "SUBJECT: %s", name)
	if p.Position != "" {
		fmt.Fprintf(&sb, ", %s", p.Position)
	}
	if p.CurrentTeamAbbr != "" {
		fmt.Fprintf(&sb, ", %s", p.CurrentTeamAbbr)
	}
	sb.WriteString("\n")

	if p.HeightInInches > 0 {
		fmt.Fprintf(&sb, "Listed size: %d'%d\", %d lbs\n",
			p.HeightInInches/12, p.HeightInInches%12, p.WeightInPounds)
	}

	totals := p.FeaturedStats.RegularSeason.SubSeason
	if totals.GamesPlayed > 0 {
		season := p.FeaturedStats.Season
		fmt.Fprintf(&sb, "Season %d: %d GP, %d G, %d A, %d P, %+d, %d PIM\n",
			season, totals.GamesPlayed, totals.Goals, totals.Assists,
			totals.Points, totals.PlusMinus, totals.PIM)
		if totals.Shots > 0 {
			fmt.Fprintf(&sb, "Shooting: %d shots, %.1f%%\n", totals.Shots, totals.ShootingPct*100)
		}
		perGame := float64(totals.Points) / float64(totals.GamesPlayed)
		fmt.Fprintf(&sb, "Scoring rate: %.2f points per game\n", perGame)
	} else {
		sb.WriteString("No featured season totals available for this player.\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
