package services

import (
	"sort"

	"github.com/Dosada05/prono-scoreboard/models"
)

// BuildLeaderboard groups players by total score, best total first. Players
// sharing a total keep the order in which they were scored.
func BuildLeaderboard(scores []*models.PlayerScore) []models.RankEntry {
	entries := make([]models.RankEntry, 0)
	index := make(map[int]int)
	for _, s := range scores {
		if s == nil {
			continue
		}
		i, ok := index[s.TotalScore]
		if !ok {
			i = len(entries)
			index[s.TotalScore] = i
			entries = append(entries, models.RankEntry{Points: s.TotalScore})
		}
		entries[i].Players = append(entries[i].Players, s.PlayerID)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}
