package services

import (
	"fmt"
	"sort"

	"github.com/Dosada05/prono-scoreboard/models"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
	pointsForLoss = 0
)

func groupPoints(score, opponentScore int) int {
	switch {
	case score > opponentScore:
		return pointsForWin
	case score < opponentScore:
		return pointsForLoss
	default:
		return pointsForDraw
	}
}

// OverlayScores returns a copy of base in which every match listed in
// overrides carries the overridden scores and the group points they imply.
// The started/finished flags of the real match are kept. base is not modified.
func OverlayScores(base map[int]models.Match, overrides map[int]models.ScorePair) map[int]models.Match {
	matches := make(map[int]models.Match, len(base))
	for number, match := range base {
		p, ok := overrides[number]
		if !ok {
			matches[number] = match
			continue
		}
		shadow := match
		shadow.Home.Score = p.Home
		shadow.Home.GroupPoints = groupPoints(p.Home, p.Away)
		shadow.Away.Score = p.Away
		shadow.Away.GroupPoints = groupPoints(p.Away, p.Home)
		matches[number] = shadow
	}
	return matches
}

// CompareStandings orders standings by points, then goal difference, then
// goals for, all descending. It returns 0 when none of them separates the two
// teams; head-to-head and disciplinary rules are not applied.
func CompareStandings(a, b models.Standing) int {
	switch {
	case a.Points != b.Points:
		return b.Points - a.Points
	case a.GoalDifference != b.GoalDifference:
		return b.GoalDifference - a.GoalDifference
	default:
		return b.GoalsFor - a.GoalsFor
	}
}

// RankGroups computes ordered standings for every group. When overrides is
// non-nil the listed matches are replaced by their hypothetical scores first.
// Only started matches count.
func RankGroups(groups map[string]models.Group, matches map[int]models.Match, overrides map[int]models.ScorePair) (map[string][]models.Standing, error) {
	if overrides != nil {
		matches = OverlayScores(matches, overrides)
	}

	rankings := make(map[string][]models.Standing, len(groups))
	for groupID, group := range groups {
		standings, err := rankGroup(group, matches)
		if err != nil {
			return nil, err
		}
		rankings[groupID] = standings
	}
	return rankings, nil
}

func rankGroup(group models.Group, matches map[int]models.Match) ([]models.Standing, error) {
	played := make([]models.Match, 0, len(group.MatchNumbers))
	for _, number := range group.MatchNumbers {
		match, ok := matches[number]
		if !ok {
			return nil, fmt.Errorf("%w: group %s lists match %d", ErrMatchNotFound, group.ID, number)
		}
		if match.Started {
			played = append(played, match)
		}
	}

	standings := make([]models.Standing, 0, len(group.TeamIDs))
	for _, teamID := range group.TeamIDs {
		standing := models.Standing{TeamID: teamID}
		for _, match := range played {
			team, opponent, ok := match.Side(teamID)
			if !ok {
				continue
			}
			standing.GamesPlayed++
			standing.Points += team.GroupPoints
			standing.GoalsFor += team.Score
			standing.GoalsAgainst += opponent.Score
		}
		standing.GoalDifference = standing.GoalsFor - standing.GoalsAgainst
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return CompareStandings(standings[i], standings[j]) < 0
	})
	return standings, nil
}
