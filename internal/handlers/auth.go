package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/smartpos/smartposgo/internal/utils"
)

// LoginRequest represents a cashier login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles cashier login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// 1. Find User
	user, err := r.store.GetUserByEmail(loginReq.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		respondError(w, http.StatusUnauthorized, "Account disabled")
		return
	}

	// 2. Check Password
	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 3. Update Last Login
	now := time.Now()
	user.LastLogin = &now
	if err := r.store.PutUser(*user); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update login time")
		return
	}

	// 4. Generate Tokens
	accessToken, refreshToken, err := utils.GenerateTokens(user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}
