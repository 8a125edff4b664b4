package models

// Group is a group-stage group. TeamIDs keeps first-seen order and is the
// fallback order for standings that tie on every criterion.
type Group struct {
	ID           string     `json:"group_id"`
	Name         string     `json:"group_name"`
	TeamIDs      []string   `json:"team_ids"`
	MatchNumbers []int      `json:"match_numbers"`
	Standings    []Standing `json:"standings"`
}

func (g Group) HasTeam(teamID string) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// Standing is a team's computed row within a group.
type Standing struct {
	TeamID         string `json:"team_id"`
	GamesPlayed    int    `json:"games_played"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
}
