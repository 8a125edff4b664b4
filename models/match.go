package models

import "time"

// MatchStatus is the numeric match status code of the FIFA calendar feed.
type MatchStatus int

const (
	MatchStatusFinished     MatchStatus = 0
	MatchStatusLive         MatchStatus = 3
	MatchStatusAboutToStart MatchStatus = 12
)

type MatchSide struct {
	TeamID      string `json:"team_id"`
	Score       int    `json:"score"`
	GroupPoints int    `json:"group_points"`
}

// Match is a normalized group-stage match. Finished implies Started.
type Match struct {
	Number   int       `json:"match_number"`
	KickOff  time.Time `json:"kick_off"`
	Home     MatchSide `json:"home"`
	Away     MatchSide `json:"away"`
	Started  bool      `json:"started"`
	Finished bool      `json:"finished"`
	Imminent bool      `json:"imminent"`
}

// Side returns the side played by teamID and its opponent.
func (m Match) Side(teamID string) (team MatchSide, opponent MatchSide, ok bool) {
	switch teamID {
	case m.Home.TeamID:
		return m.Home, m.Away, true
	case m.Away.TeamID:
		return m.Away, m.Home, true
	default:
		return MatchSide{}, MatchSide{}, false
	}
}

// IsLive reports whether the match is being played right now.
func (m Match) IsLive() bool {
	return m.Started && !m.Finished
}

// ScorePair is a hypothetical result substituted for a real one.
type ScorePair struct {
	Home int `json:"home_score"`
	Away int `json:"away_score"`
}
