package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartingBankroll is credited to every new player.
var StartingBankroll = decimal.NewFromInt(1000)

// ProfileStore persists player profiles. Username and wallet address are
// unique at the storage level; Insert reports violations as *UniqueViolationError.
type ProfileStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (Player, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (Player, error)
	FindByUsername(ctx context.Context, username string) (Player, error)
	FindByWalletAddress(ctx context.Context, address string) (Player, error)
	Insert(ctx context.Context, player Player) (Player, error)
	ListTopByBankroll(ctx context.Context, limit int) ([]Player, error)
}

// Player is the durable game account holding bankroll and statistics.
type Player struct {
	ID               uuid.UUID
	UserID           *uuid.UUID
	Username         string
	WalletAddress    *string
	Bankroll         decimal.Decimal
	TotalHandsPlayed int64
	HandsWon         int64
	HandsLost        int64
	BiggestWin       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPlayer returns a fresh profile with the starting bankroll and zeroed counters.
func NewPlayer(userID uuid.UUID, username string, walletAddress string) Player {
	now := time.Now().UTC()
	p := Player{
		ID:         uuid.New(),
		UserID:     &userID,
		Username:   username,
		Bankroll:   StartingBankroll,
		BiggestWin: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if walletAddress != "" {
		p.WalletAddress = &walletAddress
	}
	return p
}

// LeaderboardEntry is a read-only projection of a Player ranked by bankroll.
type LeaderboardEntry struct {
	ID               uuid.UUID
	Username         string
	Bankroll         decimal.Decimal
	TotalHandsPlayed int64
	HandsWon         int64
	HandsLost        int64
	BiggestWin       decimal.Decimal
	WinRate          float64
}
