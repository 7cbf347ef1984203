package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dtroode/blackjack-server/internal/api/http/apierr"
	"github.com/dtroode/blackjack-server/internal/api/http/response"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// LeaderboardService returns the top players.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// Leaderboard handles the public leaderboard endpoint.
type Leaderboard struct {
	leaderboardService LeaderboardService
	logger             *logger.Logger
}

// NewLeaderboard creates a new Leaderboard handler.
func NewLeaderboard(leaderboardService LeaderboardService, logger *logger.Logger) *Leaderboard {
	return &Leaderboard{leaderboardService: leaderboardService, logger: logger}
}

// Top handles GET /api/leaderboard?limit=N.
func (h *Leaderboard) Top(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.leaderboardService.Top(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Leaderboard handler: failed to load leaderboard",
			"limit", limit,
			"error", err.Error())
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
