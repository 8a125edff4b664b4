package services

import (
	"testing"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BuildsSnapshot(t *testing.T) {
	raw := groupGPayload()
	knockout := record(49, "X", "NED", "USA", intPtr(3), intPtr(1), models.MatchStatusFinished)
	knockout.IdGroup = nil
	raw.Results = append(raw.Results, knockout)

	snapshot, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"G"}, snapshot.GroupOrder)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, snapshot.MatchOrder)
	assert.NotContains(t, snapshot.Matches, 49)
	assert.Len(t, snapshot.Teams, 4)
	assert.Equal(t, "Team BRA", snapshot.TeamName("BRA"))
	assert.Equal(t, "G", snapshot.Teams["CMR"].GroupID)

	group := snapshot.Groups["G"]
	assert.Equal(t, "Group G", group.Name)
	assert.Equal(t, []string{"BRA", "SRB", "SUI", "CMR"}, group.TeamIDs)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, group.MatchNumbers)
}

func TestNormalize_StatusFlags(t *testing.T) {
	snapshot := groupGSnapshot()

	tests := []struct {
		number   int
		started  bool
		finished bool
	}{
		{1, true, true},
		{5, true, false},
		{6, false, false},
	}
	for _, tt := range tests {
		m := snapshot.Matches[tt.number]
		assert.Equal(t, tt.started, m.Started, "match %d started", tt.number)
		assert.Equal(t, tt.finished, m.Finished, "match %d finished", tt.number)
	}

	imminent := groupGPayload()
	imminent.Results[5].MatchStatus = intPtr(int(models.MatchStatusAboutToStart))
	s, err := Normalize(imminent)
	require.NoError(t, err)
	assert.True(t, s.Matches[6].Imminent)
	assert.False(t, s.Matches[6].Started)
}

func TestNormalize_GroupPointsAndStandings(t *testing.T) {
	snapshot := groupGSnapshot()

	m1 := snapshot.Matches[1]
	assert.Equal(t, 3, m1.Home.GroupPoints)
	assert.Equal(t, 0, m1.Away.GroupPoints)
	m3 := snapshot.Matches[3]
	assert.Equal(t, 1, m3.Home.GroupPoints)
	assert.Equal(t, 1, m3.Away.GroupPoints)
	assert.Zero(t, snapshot.Matches[6].Home.GroupPoints)

	standings := snapshot.Groups["G"].Standings
	require.Len(t, standings, 4)
	assert.Equal(t, []string{"BRA", "SUI", "CMR", "SRB"}, teamOrder(standings))
	assert.Equal(t, models.Standing{TeamID: "BRA", GamesPlayed: 2, Points: 6, GoalsFor: 3, GoalsAgainst: 0, GoalDifference: 3}, standings[0])
	assert.Equal(t, models.Standing{TeamID: "SUI", GamesPlayed: 3, Points: 6, GoalsFor: 4, GoalsAgainst: 3, GoalDifference: 1}, standings[1])
	assert.Equal(t, models.Standing{TeamID: "SRB", GamesPlayed: 3, Points: 1, GoalsFor: 5, GoalsAgainst: 8, GoalDifference: -3}, standings[3])
}

func TestNormalize_UnstartedScoresIgnored(t *testing.T) {
	raw := groupGPayload()
	raw.Results[5].Home.Score = intPtr(4)
	raw.Results[5].Away.Score = intPtr(0)

	snapshot, err := Normalize(raw)
	require.NoError(t, err)
	for _, s := range snapshot.Groups["G"].Standings {
		if s.TeamID == "CMR" {
			assert.Equal(t, 1, s.Points)
			assert.Equal(t, 2, s.GamesPlayed)
		}
	}
}

func TestNormalize_RejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.FifaCalendarResponse)
	}{
		{"nil payload", nil},
		{"missing match number", func(r *models.FifaCalendarResponse) { r.Results[0].MatchNumber = nil }},
		{"missing status", func(r *models.FifaCalendarResponse) { r.Results[1].MatchStatus = nil }},
		{"missing home", func(r *models.FifaCalendarResponse) { r.Results[2].Home = nil }},
		{"missing away team name", func(r *models.FifaCalendarResponse) { r.Results[2].Away.TeamName = nil }},
		{"missing group name", func(r *models.FifaCalendarResponse) { r.Results[0].GroupName = nil }},
		{"bad date", func(r *models.FifaCalendarResponse) { r.Results[3].LocalDate = "24/11/2022" }},
		{"duplicate match number", func(r *models.FifaCalendarResponse) { r.Results[4].MatchNumber = intPtr(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw *models.FifaCalendarResponse
			if tt.mutate != nil {
				raw = groupGPayload()
				tt.mutate(raw)
			}
			snapshot, err := Normalize(raw)
			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	a, err := Normalize(groupGPayload())
	require.NoError(t, err)
	b, err := Normalize(groupGPayload())
	require.NoError(t, err)

	assert.Equal(t, a.Groups, b.Groups)
	assert.Equal(t, a.Matches, b.Matches)
	assert.Equal(t, a.MatchOrder, b.MatchOrder)
}
