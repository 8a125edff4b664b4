package models

type Team struct {
	ID      string `json:"team_id"`
	GroupID string `json:"group_id"`
	Name    string `json:"team_name"`
}
