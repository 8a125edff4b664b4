package services

import (
	"github.com/Dosada05/prono-scoreboard/models"
)

func buildMatchView(board *models.Scoreboard, match models.Match) *MatchView {
	snapshot := board.Snapshot
	view := &MatchView{
		Match:       match,
		HomeTeam:    snapshot.TeamName(match.Home.TeamID),
		AwayTeam:    snapshot.TeamName(match.Away.TeamID),
		Predictions: make(map[string]models.MatchPrediction),
	}
	if team, ok := snapshot.Teams[match.Home.TeamID]; ok {
		view.GroupID = team.GroupID
	}
	for _, player := range board.Players {
		if p, ok := player.Matches[match.Number]; ok {
			view.Predictions[player.PlayerID] = p
		}
	}
	return view
}

func countStarted(snapshot *models.Snapshot) int {
	n := 0
	for _, m := range snapshot.Matches {
		if m.Started {
			n++
		}
	}
	return n
}
