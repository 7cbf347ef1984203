package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/blackjack-server/internal/api/http/handler"
	"github.com/dtroode/blackjack-server/internal/api/http/middleware"
	"github.com/dtroode/blackjack-server/internal/api/http/response"
	"github.com/dtroode/blackjack-server/internal/logger"
	"github.com/dtroode/blackjack-server/internal/model"
)

// Services groups the services the routes are served by.
type Services struct {
	Auth        handler.AuthService
	Challenges  handler.ChallengeService
	Sessions    SessionService
	Players     handler.PlayerService
	Leaderboard handler.LeaderboardService
}

// SessionService authenticates and revokes session tokens.
type SessionService interface {
	middleware.SessionAuthenticator
	handler.SessionService
}

// Router wires HTTP routes to handlers and middleware.
type Router struct {
	services       Services
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(services Services, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the handler serving every route. Requests pass recovery,
// then logging, then tracing; player routes and logout also require a
// session.
func (r *Router) Register() http.Handler {
	m := mux.NewRouter()

	m.Use(middleware.NewRecovery(r.logger).Handle)
	m.Use(middleware.NewLogging(r.logger).Handle)
	m.Use(middleware.NewTracing().Handle)

	authenticate := middleware.NewAuthenticate(r.services.Sessions, r.contextManager, r.logger)

	m.HandleFunc("/health", health).Methods(http.MethodGet)

	api := m.PathPrefix("/api").Subrouter()
	r.registerAuthRoutes(api, authenticate)
	r.registerPlayerRoutes(api, authenticate)
	r.registerLeaderboardRoutes(api)

	return m
}

func (r *Router) registerAuthRoutes(api *mux.Router, authenticate *middleware.Authenticate) {
	h := handler.NewAuth(r.services.Auth, r.services.Challenges, r.services.Sessions, r.logger)

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/wallet/challenge", h.WalletChallenge).Methods(http.MethodPost)
	api.HandleFunc("/auth/wallet", h.Wallet).Methods(http.MethodPost)
	api.Handle("/auth/logout", authenticate.Handle(http.HandlerFunc(h.Logout))).Methods(http.MethodPost)
}

func (r *Router) registerPlayerRoutes(api *mux.Router, authenticate *middleware.Authenticate) {
	h := handler.NewPlayer(r.services.Players, r.contextManager, r.logger)

	players := api.PathPrefix("/players").Subrouter()
	players.Use(authenticate.Handle)
	players.HandleFunc("/me", h.Me).Methods(http.MethodGet)
}

func (r *Router) registerLeaderboardRoutes(api *mux.Router) {
	h := handler.NewLeaderboard(r.services.Leaderboard, r.logger)

	api.HandleFunc("/leaderboard", h.Top).Methods(http.MethodGet)
}

func health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
