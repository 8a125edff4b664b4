package models

import "time"

// Snapshot is the normalized view of the tournament at fetch time.
// It is shared read-only by every scoring run.
type Snapshot struct {
	Groups     map[string]Group `json:"groups"`
	GroupOrder []string         `json:"group_order"`
	Teams      map[string]Team  `json:"teams"`
	Matches    map[int]Match    `json:"matches"`
	MatchOrder []int            `json:"match_order"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

// OrderedMatches returns the matches in feed order.
func (s *Snapshot) OrderedMatches() []Match {
	matches := make([]Match, 0, len(s.MatchOrder))
	for _, number := range s.MatchOrder {
		if m, ok := s.Matches[number]; ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// OrderedGroups returns the groups in the order they first appeared in the feed.
func (s *Snapshot) OrderedGroups() []Group {
	groups := make([]Group, 0, len(s.GroupOrder))
	for _, id := range s.GroupOrder {
		if g, ok := s.Groups[id]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

func (s *Snapshot) TeamName(teamID string) string {
	if t, ok := s.Teams[teamID]; ok {
		return t.Name
	}
	return teamID
}
