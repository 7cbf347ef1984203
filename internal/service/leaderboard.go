package service

import (
	"context"
	"fmt"

	"github.com/dtroode/blackjack-server/internal/model"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Leaderboard projects the richest players into read-only entries.
type Leaderboard struct {
	profiles     model.ProfileStore
	defaultLimit int
	maxLimit     int
}

func NewLeaderboard(profiles model.ProfileStore, defaultLimit, maxLimit int) *Leaderboard {
	if maxLimit <= 0 {
		maxLimit = MaxLeaderboardLimit
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(DefaultLeaderboardLimit, maxLimit)
	}
	return &Leaderboard{profiles: profiles, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Top returns at most limit entries ordered by bankroll, highest first. A
// non-positive limit means the default; larger limits are clamped.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	switch {
	case limit <= 0:
		limit = l.defaultLimit
	case limit > l.maxLimit:
		limit = l.maxLimit
	}

	players, err := l.profiles.ListTopByBankroll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, Project(p))
	}
	return entries, nil
}

// Project derives the leaderboard entry of p.
func Project(p model.Player) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		ID:               p.ID,
		Username:         p.Username,
		Bankroll:         p.Bankroll,
		TotalHandsPlayed: p.TotalHandsPlayed,
		HandsWon:         p.HandsWon,
		HandsLost:        p.HandsLost,
		BiggestWin:       p.BiggestWin,
		WinRate:          WinRate(p.HandsWon, p.TotalHandsPlayed),
	}
}

// WinRate is the percentage of played hands that were won, or 0 when no
// hand was played.
func WinRate(won, played int64) float64 {
	if played <= 0 {
		return 0
	}
	return float64(won) / float64(played) * 100
}
