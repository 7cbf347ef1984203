package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/blackjack-server/internal/model"
)

// User is the public view of an identity.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Player mirrors the players row.
type Player struct {
	ID               uuid.UUID       `json:"id"`
	UserID           *uuid.UUID      `json:"user_id"`
	Username         string          `json:"username"`
	WalletAddress    *string         `json:"wallet_address"`
	Bankroll         decimal.Decimal `json:"bankroll"`
	TotalHandsPlayed int64           `json:"total_hands_played"`
	HandsWon         int64           `json:"hands_won"`
	HandsLost        int64           `json:"hands_lost"`
	BiggestWin       decimal.Decimal `json:"biggest_win"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Session is a bearer token and its expiry.
type Session struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Account is returned by registration and sign-in.
type Account struct {
	User    User     `json:"user"`
	Player  Player   `json:"player"`
	Session *Session `json:"session"`
}

// Wallet is returned by wallet authentication.
type Wallet struct {
	Player        Player   `json:"player"`
	WalletAddress string   `json:"walletAddress"`
	IsNewUser     bool     `json:"isNewUser"`
	Session       *Session `json:"session"`
}

// Challenge is a wallet sign-in challenge.
type Challenge struct {
	Message   string    `json:"message"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	ID               uuid.UUID       `json:"id"`
	Username         string          `json:"username"`
	Bankroll         decimal.Decimal `json:"bankroll"`
	TotalHandsPlayed int64           `json:"total_hands_played"`
	HandsWon         int64           `json:"hands_won"`
	HandsLost        int64           `json:"hands_lost"`
	BiggestWin       decimal.Decimal `json:"biggest_win"`
	WinRate          float64         `json:"win_rate"`
}

func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:               p.ID,
		UserID:           p.UserID,
		Username:         p.Username,
		WalletAddress:    p.WalletAddress,
		Bankroll:         p.Bankroll,
		TotalHandsPlayed: p.TotalHandsPlayed,
		HandsWon:         p.HandsWon,
		HandsLost:        p.HandsLost,
		BiggestWin:       p.BiggestWin,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func SessionFromModel(s *model.SessionToken) *Session {
	if s == nil {
		return nil
	}
	return &Session{AccessToken: s.AccessToken, TokenType: "Bearer", ExpiresAt: s.ExpiresAt}
}

func AccountFromModel(a model.AccountResult) Account {
	return Account{
		User: User{
			ID:        a.Identity.ID,
			Email:     a.Identity.Email,
			CreatedAt: a.Identity.CreatedAt,
		},
		Player:  PlayerFromModel(a.Player),
		Session: SessionFromModel(a.Session),
	}
}

func WalletFromModel(w model.WalletResult) Wallet {
	return Wallet{
		Player:        PlayerFromModel(w.Player),
		WalletAddress: w.WalletAddress,
		IsNewUser:     w.IsNewUser,
		Session:       SessionFromModel(w.Session),
	}
}

func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntry{
			ID:               e.ID,
			Username:         e.Username,
			Bankroll:         e.Bankroll,
			TotalHandsPlayed: e.TotalHandsPlayed,
			HandsWon:         e.HandsWon,
			HandsLost:        e.HandsLost,
			BiggestWin:       e.BiggestWin,
			WinRate:          e.WinRate,
		})
	}
	return out
}
