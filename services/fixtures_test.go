package services

import (
	"github.com/Dosada05/prono-scoreboard/models"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func localized(s string) []models.FifaLocalized {
	return []models.FifaLocalized{{Locale: "en-GB", Description: s}}
}

func fifaTeam(id string, score *int) *models.FifaTeam {
	return &models.FifaTeam{IdTeam: id, TeamName: localized("Team " + id), Score: score}
}

// record builds one calendar entry; a nil score mimics the feed before kick-off.
func record(number int, group, home, away string, homeScore, awayScore *int, status models.MatchStatus) models.FifaMatchResult {
	return models.FifaMatchResult{
		IdGroup:     strPtr(group),
		GroupName:   localized("Group " + group),
		LocalDate:   "2022-11-24T19:00:00Z",
		Home:        fifaTeam(home, homeScore),
		Away:        fifaTeam(away, awayScore),
		MatchStatus: intPtr(int(status)),
		MatchNumber: intPtr(number),
	}
}

const notStarted models.MatchStatus = 1

// groupGPayload is a group where five matches have started:
//
//	BRA 6 pts +3, SUI 6 pts +1, CMR 1 pt -1, SRB 1 pt -3
func groupGPayload() *models.FifaCalendarResponse {
	return &models.FifaCalendarResponse{
		Results: []models.FifaMatchResult{
			record(1, "G", "BRA", "SRB", intPtr(2), intPtr(0), models.MatchStatusFinished),
			record(2, "G", "SUI", "CMR", intPtr(1), intPtr(0), models.MatchStatusFinished),
			record(3, "G", "CMR", "SRB", intPtr(3), intPtr(3), models.MatchStatusFinished),
			record(4, "G", "BRA", "SUI", intPtr(1), intPtr(0), models.MatchStatusFinished),
			record(5, "G", "SRB", "SUI", intPtr(2), intPtr(3), models.MatchStatusLive),
			record(6, "G", "CMR", "BRA", nil, nil, notStarted),
		},
	}
}

func groupGSnapshot() *models.Snapshot {
	snapshot, err := Normalize(groupGPayload())
	if err != nil {
		panic(err)
	}
	return snapshot
}

func teamOrder(standings []models.Standing) []string {
	ids := make([]string, 0, len(standings))
	for _, s := range standings {
		ids = append(ids, s.TeamID)
	}
	return ids
}

func standingsFor(ids ...string) []models.Standing {
	standings := make([]models.Standing, 0, len(ids))
	for _, id := range ids {
		standings = append(standings, models.Standing{TeamID: id})
	}
	return standings
}
