package handlers

import (
	"net/http"

	"github.com/Dosada05/prono-scoreboard/models"
	"github.com/Dosada05/prono-scoreboard/services"
	"github.com/go-chi/chi/v5"
)

type ScoreboardHandler struct {
	scoreboardService services.ScoreboardService
}

func NewScoreboardHandler(ss services.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{
		scoreboardService: ss,
	}
}

type playerSummary struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	MatchesScore int    `json:"matches_score"`
	GroupsScore  int    `json:"groups_score"`
	BonusScore   int    `json:"bonus_score"`
	TotalScore   int    `json:"total_score"`
}

type standingView struct {
	models.Standing
	TeamName string `json:"team_name"`
}

type groupView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Standings []standingView `json:"standings"`
}

// GetScoreboard godoc
// @Summary Current leaderboard
// @Tags scoreboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Rankings, leaders, player totals and failures"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/scoreboard [get]
func (h *ScoreboardHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.scoreboardService.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	leaders, err := h.scoreboardService.Leaders()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	players := make([]playerSummary, 0, len(board.Players))
	for _, p := range board.Players {
		players = append(players, summarize(p))
	}
	leaderIDs := make([]string, 0, len(leaders))
	for _, p := range leaders {
		leaderIDs = append(leaderIDs, p.PlayerID)
	}

	response := jsonResponse{
		"rankings":     board.Rankings,
		"leaders":      leaderIDs,
		"players":      players,
		"failures":     board.Failures,
		"generated_at": board.GeneratedAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayer godoc
// @Summary Full score sheet of one player
// @Tags scoreboard
// @Produce json
// @Param playerID path string true "Player ID (e.g. Francois_Mary)"
// @Success 200 {object} map[string]interface{} "Player score"
// @Failure 404 {object} map[string]string "Unknown player"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/players/{playerID} [get]
func (h *ScoreboardHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	player, err := h.scoreboardService.GetPlayer(playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroups godoc
// @Summary Real group standings
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]interface{} "Groups in feed order"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/groups [get]
func (h *ScoreboardHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	board, err := h.scoreboardService.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	snapshot := board.Snapshot
	groups := make([]groupView, 0, len(snapshot.GroupOrder))
	for _, g := range snapshot.OrderedGroups() {
		view := groupView{ID: g.ID, Name: g.Name, Standings: make([]standingView, 0, len(g.Standings))}
		for _, s := range g.Standings {
			view.Standings = append(view.Standings, standingView{Standing: s, TeamName: snapshot.TeamName(s.TeamID)})
		}
		groups = append(groups, view)
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches godoc
// @Summary All group-stage matches
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]interface{} "Matches in feed order"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/matches [get]
func (h *ScoreboardHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	board, err := h.scoreboardService.Current()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": board.Snapshot.OrderedMatches()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLiveMatch godoc
// @Summary Match currently being played, with every prediction for it
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]interface{} "Match view"
// @Failure 404 {object} map[string]string "No match in progress"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/matches/live [get]
func (h *ScoreboardHandler) GetLiveMatch(w http.ResponseWriter, r *http.Request) {
	view, err := h.scoreboardService.LiveMatch()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary One match with every prediction for it
// @Tags tournament
// @Produce json
// @Param matchNumber path int true "Match number"
// @Success 200 {object} map[string]interface{} "Match view"
// @Failure 400 {object} map[string]string "Invalid match number"
// @Failure 404 {object} map[string]string "Unknown match"
// @Failure 503 {object} map[string]string "Scoreboard not computed yet"
// @Router /api/matches/{matchNumber} [get]
func (h *ScoreboardHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchNumber, err := getIntFromURL(r, "matchNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.scoreboardService.GetMatch(matchNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Refresh godoc
// @Summary Recompute the scoreboard now
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{} "Fresh rankings"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 422 {object} map[string]string "Tournament data rejected"
// @Failure 502 {object} map[string]string "Upstream fetch failed"
// @Security BearerAuth
// @Router /api/admin/refresh [post]
func (h *ScoreboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	board, err := h.scoreboardService.Refresh(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"rankings":     board.Rankings,
		"failures":     board.Failures,
		"generated_at": board.GeneratedAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func summarize(p *models.PlayerScore) playerSummary {
	return playerSummary{
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		MatchesScore: p.MatchesScore,
		GroupsScore:  p.GroupsScore,
		BonusScore:   p.BonusScore,
		TotalScore:   p.TotalScore,
	}
}
