package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/prono-scoreboard/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary Issue an admin token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Admin credentials"
// @Success 200 {object} map[string]string "HS256 bearer token"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Admin login disabled"
// @Router /api/auth/token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Username == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"token": token}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
