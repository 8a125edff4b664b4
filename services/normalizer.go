package services

import (
	"fmt"
	"time"

	"github.com/Dosada05/prono-scoreboard/models"
)

// Layouts accepted for LocalDate. The feed sends a zone-less local time most of the time.
var kickOffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Normalize converts a raw calendar payload into a snapshot. Records without a
// group are skipped. Any malformed record aborts the whole snapshot.
func Normalize(raw *models.FifaCalendarResponse) (*models.Snapshot, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrValidationFailed)
	}

	snapshot := &models.Snapshot{
		Groups:    make(map[string]models.Group),
		Teams:     make(map[string]models.Team),
		Matches:   make(map[int]models.Match),
		FetchedAt: time.Now(),
	}

	for i, record := range raw.Results {
		if record.IdGroup == nil {
			continue
		}
		groupID := *record.IdGroup

		match, err := normalizeMatch(record)
		if err != nil {
			return nil, fmt.Errorf("%w: result %d: %w", ErrValidationFailed, i, err)
		}
		if _, dup := snapshot.Matches[match.Number]; dup {
			return nil, fmt.Errorf("%w: result %d: duplicate match number %d", ErrValidationFailed, i, match.Number)
		}

		group, ok := snapshot.Groups[groupID]
		if !ok {
			groupName, ok := models.FirstDescription(record.GroupName)
			if !ok {
				return nil, fmt.Errorf("%w: result %d: group %s has no name", ErrValidationFailed, i, groupID)
			}
			group = models.Group{ID: groupID, Name: groupName}
			snapshot.GroupOrder = append(snapshot.GroupOrder, groupID)
		}
		group.MatchNumbers = append(group.MatchNumbers, match.Number)

		for _, side := range []*models.FifaTeam{record.Home, record.Away} {
			if !group.HasTeam(side.IdTeam) {
				group.TeamIDs = append(group.TeamIDs, side.IdTeam)
			}
			if _, seen := snapshot.Teams[side.IdTeam]; seen {
				continue
			}
			teamName, _ := models.FirstDescription(side.TeamName)
			snapshot.Teams[side.IdTeam] = models.Team{
				ID:      side.IdTeam,
				GroupID: groupID,
				Name:    teamName,
			}
		}

		snapshot.Groups[groupID] = group
		snapshot.Matches[match.Number] = match
		snapshot.MatchOrder = append(snapshot.MatchOrder, match.Number)
	}

	rankings, err := RankGroups(snapshot.Groups, snapshot.Matches, nil)
	if err != nil {
		return nil, err
	}
	for id, standings := range rankings {
		group := snapshot.Groups[id]
		group.Standings = standings
		snapshot.Groups[id] = group
	}

	return snapshot, nil
}

func normalizeMatch(record models.FifaMatchResult) (models.Match, error) {
	if record.MatchNumber == nil {
		return models.Match{}, fmt.Errorf("missing MatchNumber")
	}
	if record.MatchStatus == nil {
		return models.Match{}, fmt.Errorf("match %d: missing MatchStatus", *record.MatchNumber)
	}
	sides := []struct {
		name string
		team *models.FifaTeam
	}{{"Home", record.Home}, {"Away", record.Away}}
	for _, side := range sides {
		team := side.team
		if team == nil {
			return models.Match{}, fmt.Errorf("match %d: missing %s", *record.MatchNumber, side.name)
		}
		if team.IdTeam == "" {
			return models.Match{}, fmt.Errorf("match %d: %s has no IdTeam", *record.MatchNumber, side.name)
		}
		if _, ok := models.FirstDescription(team.TeamName); !ok {
			return models.Match{}, fmt.Errorf("match %d: %s has no TeamName", *record.MatchNumber, side.name)
		}
	}

	kickOff, err := parseKickOff(record.LocalDate)
	if err != nil {
		return models.Match{}, fmt.Errorf("match %d: %w", *record.MatchNumber, err)
	}

	status := models.MatchStatus(*record.MatchStatus)
	match := models.Match{
		Number:   *record.MatchNumber,
		KickOff:  kickOff,
		Home:     models.MatchSide{TeamID: record.Home.IdTeam, Score: scoreOrZero(record.Home.Score)},
		Away:     models.MatchSide{TeamID: record.Away.IdTeam, Score: scoreOrZero(record.Away.Score)},
		Started:  status == models.MatchStatusFinished || status == models.MatchStatusLive,
		Finished: status == models.MatchStatusFinished,
		Imminent: status == models.MatchStatusAboutToStart,
	}
	if match.Started {
		match.Home.GroupPoints = groupPoints(match.Home.Score, match.Away.Score)
		match.Away.GroupPoints = groupPoints(match.Away.Score, match.Home.Score)
	}
	return match, nil
}

func parseKickOff(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing LocalDate")
	}
	for _, layout := range kickOffLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable LocalDate %q", value)
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
