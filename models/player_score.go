package models

import "time"

// PlayerScore is everything computed for one participant. It is rebuilt from
// scratch on every refresh. A match missing from Matches was not predicted.
type PlayerScore struct {
	PlayerID     string                           `json:"player_id"`
	Name         string                           `json:"name"`
	Matches      map[int]MatchPrediction          `json:"matches"`
	Groups       map[string][]Standing            `json:"groups"`
	GroupResults map[string]GroupPredictionResult `json:"group_results"`
	MatchesScore int                              `json:"matches_score"`
	GroupsScore  int                              `json:"groups_score"`
	BonusScore   int                              `json:"bonus_score"`
	TotalScore   int                              `json:"total_score"`
}

// RankEntry lists the players sharing a total.
type RankEntry struct {
	Points  int      `json:"points"`
	Players []string `json:"players"`
}

// Scoreboard is the output of one refresh.
type Scoreboard struct {
	Snapshot    *Snapshot         `json:"-"`
	Players     []*PlayerScore    `json:"players"`
	Rankings    []RankEntry       `json:"rankings"`
	Failures    map[string]string `json:"failures,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

func (s *Scoreboard) Player(id string) (*PlayerScore, bool) {
	for _, p := range s.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return nil, false
}
