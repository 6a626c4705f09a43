package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches league data from the NHL web API and reshapes it into the
// digest form the report pipeline injects into base instructions.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api-web.nhle.com/v1"
	}
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(endpoint, "/"),
	}
}

// PlayerLanding is the subset of the player landing payload the digest uses.
type PlayerLanding struct {
	PlayerID  int    `json:"playerId"`
	FirstName struct {
		Default string `json:"default"`
	} `json:"firstName"`
	LastName struct {
		Default string `json:"default"`
	} `json:"lastName"`
	Position        string `json:"position"`
	HeightInInches  int    `json:"heightInInches"`
	WeightInPounds  int    `json:"weightInPounds"`
	CurrentTeamAbbr string `json:"currentTeamAbbrev"`
	FeaturedStats   struct {
		Season     int `json:"season"`
		RegularSeason struct {
			SubSeason SeasonTotals `json:"subSeason"`
		} `json:"regularSeason"`
	} `json:"featuredStats"`
}

// SeasonTotals is a skater's counting line for one season.
type SeasonTotals struct {
	GamesPlayed int     `json:"gamesPlayed"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Points      int     `json:"points"`
	PlusMinus   int     `json:"plusMinus"`
	PIM         int     `json:"pim"`
	Shots       int     `json:"shots"`
	ShootingPct float64 `json:"shootingPctg"`
}

// RosterPlayer is one entry of a team's current roster.
type RosterPlayer struct {
	ID        int `json:"id"`
	FirstName struct {
		Default string `json:"default"`
	} `json:"firstName"`
	LastName struct {
		Default string `json:"default"`
	} `json:"lastName"`
	PositionCode string `json:"positionCode"`
	SweaterNumber int   `json:"sweaterNumber"`
}

type rosterResponse struct {
	Forwards   []RosterPlayer `json:"forwards"`
	Defensemen []RosterPlayer `json:"defensemen"`
	Goalies    []RosterPlayer `json:"goalies"`
}

// PlayerLanding fetches the landing record for one player ID.
func (c *Client) PlayerLanding(ctx context.Context, playerID int) (*PlayerLanding, error) {
	var landing PlayerLanding
	if err := c.getJSON(ctx, fmt.Sprintf("/player/%d/landing", playerID), &landing); err != nil {
		return nil, fmt.Errorf("player landing %d: %w", playerID, err)
	}
	return &landing, nil
}

// TeamRoster fetches the current roster for a team abbreviation (e.g. "TOR").
func (c *Client) TeamRoster(ctx context.Context, teamAbbr string) ([]RosterPlayer, error) {
	var resp rosterResponse
	path := fmt.Sprintf("/roster/%s/current", strings.ToUpper(strings.TrimSpace(teamAbbr)))
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("roster %s: %w", teamAbbr, err)
	}
	roster := make([]RosterPlayer, 0, len(resp.Forwards)+len(resp.Defensemen)+len(resp.Goalies))
	roster = append(roster, resp.Forwards...)
	roster = append(roster, resp.Defensemen...)
	roster = append(roster, resp.Goalies...)
	return roster, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
