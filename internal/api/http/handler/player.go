package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/blackjack-server/internal/api/http/apierr"
	"github.com/dtroode/blackjack-server/internal/api/http/response"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// PlayerService resolves the player behind a session.
type PlayerService interface {
	CurrentPlayer(ctx context.Context, claims model.SessionClaims) (model.Player, error)
}

// Player handles HTTP endpoints for the authenticated player.
type Player struct {
	playerService  PlayerService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPlayer creates a new Player handler.
func NewPlayer(playerService PlayerService, contextManager model.ContextManager, logger *logger.Logger) *Player {
	return &Player{playerService: playerService, contextManager: contextManager, logger: logger}
}

// Me handles GET /api/players/me.
func (h *Player) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetSubjectFromContext(r.Context())
	if !ok {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	player, err := h.playerService.CurrentPlayer(r.Context(), claims)
	if err != nil {
		h.logger.InfoContext(r.Context(), "Player handler: failed to get current player",
			"player_id", claims.PlayerID,
			"error", err.Error())
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
