package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/prono-scoreboard/services"
)

type HealthHandler struct {
	scoreboardService services.ScoreboardService
}

func NewHealthHandler(ss services.ScoreboardService) *HealthHandler {
	return &HealthHandler{scoreboardService: ss}
}

// Healthz godoc
// @Summary Liveness and readiness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Process is up"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := jsonResponse{"status": "ok", "scoreboard_ready": true}
	board, err := h.scoreboardService.Current()
	switch {
	case errors.Is(err, services.ErrScoreboardNotReady):
		status["scoreboard_ready"] = false
	case err != nil:
		serverErrorResponse(w, r, err)
		return
	default:
		status["generated_at"] = board.GeneratedAt
	}

	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
