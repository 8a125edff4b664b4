package services

import (
	"testing"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMatchPrediction(t *testing.T) {
	tests := []struct {
		name               string
		realHome, realAway int
		predHome, predAway int
		want               models.MatchPredictionResult
	}{
		{"right winner wrong score", 2, 1, 3, 0, models.MatchPredictionOutcomeOK},
		{"exact score", 2, 1, 2, 1, models.MatchPredictionExactScoreOK},
		{"wrong winner", 2, 1, 0, 2, models.MatchPredictionFail},
		{"draw predicted as draw", 1, 1, 0, 0, models.MatchPredictionOutcomeOK},
		{"draw predicted as win", 1, 1, 1, 0, models.MatchPredictionFail},
		{"exact goalless draw", 0, 0, 0, 0, models.MatchPredictionExactScoreOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMatchPrediction(tt.realHome, tt.realAway, tt.predHome, tt.predAway))
		})
	}
}

func TestMatchOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeHomeWin, MatchOutcomeOf(2, 0))
	assert.Equal(t, OutcomeAwayWin, MatchOutcomeOf(0, 1))
	assert.Equal(t, OutcomeTie, MatchOutcomeOf(3, 3))
}

func TestClassifyGroupPrediction(t *testing.T) {
	real := standingsFor("A", "B", "C", "D")

	tests := []struct {
		name      string
		predicted []models.Standing
		want      models.GroupPredictionResult
	}{
		{"perfect", standingsFor("A", "B", "C", "D"), models.GroupPredictionPerfect},
		{"top two right order", standingsFor("A", "B", "D", "C"), models.GroupPredictionQualifiedRightOrder},
		{"top two swapped", standingsFor("B", "A", "C", "D"), models.GroupPredictionQualifiedWrongOrder},
		{"top two wrong", standingsFor("C", "D", "A", "B"), models.GroupPredictionFail},
		{"one qualifier right", standingsFor("A", "C", "B", "D"), models.GroupPredictionFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyGroupPrediction(real, tt.predicted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyGroupPrediction_GroupSize(t *testing.T) {
	_, err := ClassifyGroupPrediction(standingsFor("A", "B", "C"), standingsFor("A", "B", "C"))
	assert.ErrorIs(t, err, ErrGroupSizeInvalid)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ClassifyGroupPrediction(standingsFor("A", "B", "C", "D"), standingsFor("A", "B", "C", "D", "E"))
	assert.ErrorIs(t, err, ErrGroupSizeInvalid)
}

func TestScorer_ScoreParticipant(t *testing.T) {
	snapshot := groupGSnapshot()
	scorer := NewScorer(map[string]int{"Antoine": 3})

	predictions := []models.Prediction{
		{MatchID: 1, HomeScore: 2, AwayScore: 0}, // exact
		{MatchID: 2, HomeScore: 2, AwayScore: 0}, // outcome
		{MatchID: 3, HomeScore: 0, AwayScore: 1}, // fail
		{MatchID: 4, HomeScore: 1, AwayScore: 0}, // exact
		{MatchID: 5, HomeScore: 2, AwayScore: 3}, // exact
		{MatchID: 6, HomeScore: 2, AwayScore: 1}, // fail against the 0-0 placeholder
		{MatchID: 99, HomeScore: 1, AwayScore: 1},
		{MatchID: 1, HomeScore: 0, AwayScore: 0},
	}

	score, err := scorer.ScoreParticipant(snapshot, "Antoine", predictions)
	require.NoError(t, err)

	assert.Equal(t, "Antoine", score.PlayerID)
	assert.Equal(t, "Antoine", score.Name)
	assert.Len(t, score.Matches, 6)
	assert.NotContains(t, score.Matches, 99)
	assert.Equal(t, models.MatchPredictionExactScoreOK, score.Matches[1].Result)
	assert.Equal(t, 2, score.Matches[1].HomeScore)
	assert.Equal(t, models.MatchPredictionOutcomeOK, score.Matches[2].Result)
	assert.Equal(t, 18, score.MatchesScore)

	// BRA 6 pts +3, SUI 6 pts +2, SRB 3 pts -2, CMR 0 pts; match 6 has not started.
	assert.Equal(t, []string{"BRA", "SUI", "SRB", "CMR"}, teamOrder(score.Groups["G"]))
	assert.Equal(t, models.GroupPredictionQualifiedRightOrder, score.GroupResults["G"])
	assert.Equal(t, 3, score.GroupsScore)

	assert.Equal(t, 3, score.BonusScore)
	assert.Equal(t, 24, score.TotalScore)

	assert.Equal(t, []string{"BRA", "SUI", "CMR", "SRB"}, teamOrder(snapshot.Groups["G"].Standings))
}

func TestScorer_GroupTiers(t *testing.T) {
	tests := []struct {
		name        string
		predictions []models.Prediction
		wantOrder   []string
		want        models.GroupPredictionResult
	}{
		{
			name:      "table unchanged",
			wantOrder: []string{"BRA", "SUI", "CMR", "SRB"},
			want:      models.GroupPredictionPerfect,
		},
		{
			name:        "bottom two swapped",
			predictions: []models.Prediction{{MatchID: 3, HomeScore: 0, AwayScore: 1}},
			wantOrder:   []string{"BRA", "SUI", "SRB", "CMR"},
			want:        models.GroupPredictionQualifiedRightOrder,
		},
		{
			name:        "top two swapped",
			predictions: []models.Prediction{{MatchID: 4, HomeScore: 0, AwayScore: 1}},
			wantOrder:   []string{"SUI", "BRA", "CMR", "SRB"},
			want:        models.GroupPredictionQualifiedWrongOrder,
		},
		{
			name:        "wrong qualifiers",
			predictions: []models.Prediction{{MatchID: 1, HomeScore: 0, AwayScore: 1}},
			wantOrder:   []string{"SUI", "SRB", "BRA", "CMR"},
			want:        models.GroupPredictionFail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := NewScorer(nil).ScoreParticipant(groupGSnapshot(), "p1", tt.predictions)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrder, teamOrder(score.Groups["G"]))
			assert.Equal(t, tt.want, score.GroupResults["G"])
			assert.Equal(t, int(tt.want), score.GroupsScore)
		})
	}
}

func TestScorer_SnapshotWithoutCachedStandings(t *testing.T) {
	snapshot := groupGSnapshot()
	group := snapshot.Groups["G"]
	group.Standings = nil
	snapshot.Groups["G"] = group

	score, err := NewScorer(nil).ScoreParticipant(snapshot, "p1", []models.Prediction{{MatchID: 4, HomeScore: 0, AwayScore: 1}})
	require.NoError(t, err)
	assert.Equal(t, models.GroupPredictionQualifiedWrongOrder, score.GroupResults["G"])
}

func TestScorer_NoPredictions(t *testing.T) {
	snapshot := groupGSnapshot()

	score, err := NewScorer(nil).ScoreParticipant(snapshot, "Francois_Mary", nil)
	require.NoError(t, err)

	assert.Equal(t, "Francois Mary", score.Name)
	assert.Empty(t, score.Matches)
	assert.Zero(t, score.MatchesScore)
	// With no predictions the predicted table equals the real one.
	assert.Equal(t, models.GroupPredictionPerfect, score.GroupResults["G"])
	assert.Equal(t, 5, score.TotalScore)
}

func TestScorer_UnstartedMatchScoredAgainstPlaceholder(t *testing.T) {
	snapshot := groupGSnapshot()

	score, err := NewScorer(nil).ScoreParticipant(snapshot, "p1", []models.Prediction{{MatchID: 6, HomeScore: 0, AwayScore: 0}})
	require.NoError(t, err)
	assert.Equal(t, models.MatchPredictionExactScoreOK, score.Matches[6].Result)
}

func TestScorer_InvalidGroupSize(t *testing.T) {
	snapshot, err := Normalize(&models.FifaCalendarResponse{Results: []models.FifaMatchResult{
		record(1, "A", "QAT", "ECU", intPtr(0), intPtr(2), models.MatchStatusFinished),
		record(2, "A", "SEN", "QAT", intPtr(3), intPtr(1), models.MatchStatusFinished),
	}})
	require.NoError(t, err)

	_, err = NewScorer(nil).ScoreParticipant(snapshot, "p1", nil)
	assert.ErrorIs(t, err, ErrGroupSizeInvalid)
}

func TestCheckSnapshotReferences(t *testing.T) {
	snapshot := groupGSnapshot()
	require.NoError(t, CheckSnapshotReferences(snapshot))

	delete(snapshot.Teams, "SRB")
	err := CheckSnapshotReferences(snapshot)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.ErrorIs(t, err, ErrReferenceMissing)

	_, err = NewScorer(nil).ScoreParticipant(snapshot, "p1", nil)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Francois Mary", DisplayName("Francois_Mary"))
	assert.Equal(t, "Jean Pierre_Dupont", DisplayName("Jean_Pierre_Dupont"))
	assert.Equal(t, "Remy", DisplayName("Remy"))
}
