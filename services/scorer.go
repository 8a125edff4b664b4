package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/prono-scoreboard/models"
)

// groupSize is the number of teams a group must have to be classified.
const groupSize = 4

// MatchOutcome is the result category of a score, independent of the margin.
type MatchOutcome string

const (
	OutcomeHomeWin MatchOutcome = "home"
	OutcomeAwayWin MatchOutcome = "away"
	OutcomeTie     MatchOutcome = "tie"
)

func MatchOutcomeOf(homeScore, awayScore int) MatchOutcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHomeWin
	case homeScore < awayScore:
		return OutcomeAwayWin
	default:
		return OutcomeTie
	}
}

// ClassifyMatchPrediction compares a predicted score with the recorded one.
func ClassifyMatchPrediction(homeScore, awayScore, predictedHome, predictedAway int) models.MatchPredictionResult {
	if homeScore == predictedHome && awayScore == predictedAway {
		return models.MatchPredictionExactScoreOK
	}
	if MatchOutcomeOf(homeScore, awayScore) == MatchOutcomeOf(predictedHome, predictedAway) {
		return models.MatchPredictionOutcomeOK
	}
	return models.MatchPredictionFail
}

// ClassifyGroupPrediction compares predicted standings with the real ones.
// Tiers are checked from best to worst and only the first that holds applies.
func ClassifyGroupPrediction(real, predicted []models.Standing) (models.GroupPredictionResult, error) {
	if len(real) != groupSize || len(predicted) != groupSize {
		return models.GroupPredictionFail, fmt.Errorf("%w: got %d real and %d predicted standings", ErrGroupSizeInvalid, len(real), len(predicted))
	}

	perfect := true
	for i := 0; i < groupSize; i++ {
		if real[i].TeamID != predicted[i].TeamID {
			perfect = false
			break
		}
	}

	first, second := real[0].TeamID, real[1].TeamID
	pFirst, pSecond := predicted[0].TeamID, predicted[1].TeamID

	switch {
	case perfect:
		return models.GroupPredictionPerfect, nil
	case first == pFirst && second == pSecond:
		return models.GroupPredictionQualifiedRightOrder, nil
	case first == pSecond && second == pFirst:
		return models.GroupPredictionQualifiedWrongOrder, nil
	default:
		return models.GroupPredictionFail, nil
	}
}

// Scorer scores participants against a snapshot. Bonuses are static points
// granted per participant outside of match data (top goalscorer guess).
type Scorer struct {
	bonuses map[string]int
}

func NewScorer(bonuses map[string]int) *Scorer {
	copied := make(map[string]int, len(bonuses))
	for id, points := range bonuses {
		copied[id] = points
	}
	return &Scorer{bonuses: copied}
}

func (s *Scorer) Bonus(participantID string) int {
	return s.bonuses[participantID]
}

// ScoreParticipant builds the full score of one participant. Predictions for
// matches absent from the snapshot are ignored; when a match is predicted
// twice the first prediction wins.
func (s *Scorer) ScoreParticipant(snapshot *models.Snapshot, participantID string, predictions []models.Prediction) (*models.PlayerScore, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrValidationFailed)
	}
	if err := CheckSnapshotReferences(snapshot); err != nil {
		return nil, err
	}

	byMatch := make(map[int]models.Prediction, len(predictions))
	for _, p := range predictions {
		if _, seen := byMatch[p.MatchID]; !seen {
			byMatch[p.MatchID] = p
		}
	}

	score := &models.PlayerScore{
		PlayerID:     participantID,
		Name:         DisplayName(participantID),
		Matches:      make(map[int]models.MatchPrediction),
		GroupResults: make(map[string]models.GroupPredictionResult, len(snapshot.Groups)),
	}

	overrides := make(map[int]models.ScorePair)
	for _, number := range snapshot.MatchOrder {
		match := snapshot.Matches[number]
		p, ok := byMatch[number]
		if !ok {
			continue
		}
		mp := models.MatchPrediction{
			MatchNumber: number,
			HomeScore:   p.HomeScore,
			AwayScore:   p.AwayScore,
			Result:      ClassifyMatchPrediction(match.Home.Score, match.Away.Score, p.HomeScore, p.AwayScore),
		}
		score.Matches[number] = mp
		score.MatchesScore += int(mp.Result)
		overrides[number] = models.ScorePair{Home: p.HomeScore, Away: p.AwayScore}
	}

	// The real table is ranked from the snapshot's matches rather than read from
	// Group.Standings, which is only filled in by Normalize.
	realRankings, err := RankGroups(snapshot.Groups, snapshot.Matches, nil)
	if err != nil {
		return nil, err
	}
	predictedRankings, err := RankGroups(snapshot.Groups, snapshot.Matches, overrides)
	if err != nil {
		return nil, err
	}
	score.Groups = predictedRankings

	for _, groupID := range snapshot.GroupOrder {
		result, err := ClassifyGroupPrediction(realRankings[groupID], predictedRankings[groupID])
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", groupID, err)
		}
		score.GroupResults[groupID] = result
		score.GroupsScore += int(result)
	}

	score.BonusScore = s.Bonus(participantID)
	score.TotalScore = score.MatchesScore + score.GroupsScore + score.BonusScore
	return score, nil
}

// CheckSnapshotReferences verifies that every match points at known teams and
// every group lists known matches.
func CheckSnapshotReferences(snapshot *models.Snapshot) error {
	for _, number := range snapshot.MatchOrder {
		match, ok := snapshot.Matches[number]
		if !ok {
			return fmt.Errorf("%w: match %d is listed but missing", ErrMatchNotFound, number)
		}
		for _, teamID := range []string{match.Home.TeamID, match.Away.TeamID} {
			if _, ok := snapshot.Teams[teamID]; !ok {
				return fmt.Errorf("%w: match %d references team %s", ErrTeamNotFound, number, teamID)
			}
		}
	}
	for _, group := range snapshot.Groups {
		for _, number := range group.MatchNumbers {
			if _, ok := snapshot.Matches[number]; !ok {
				return fmt.Errorf("%w: group %s lists match %d", ErrMatchNotFound, group.ID, number)
			}
		}
	}
	return nil
}

// DisplayName turns a participant id such as "Francois_Mary" into "Francois Mary".
func DisplayName(participantID string) string {
	return strings.Replace(participantID, "_", " ", 1)
}
