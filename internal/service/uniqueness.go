package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/blackjack-server/internal/model"
)

// UniquenessChecker answers whether a username or wallet address is already
// owned by a player. It is advisory: the unique constraints in storage stay
// authoritative when two requests race.
type UniquenessChecker struct {
	profiles model.ProfileStore
}

func NewUniquenessChecker(profiles model.ProfileStore) *UniquenessChecker {
	return &UniquenessChecker{profiles: profiles}
}

// CheckUsername returns a ConflictError when username is taken.
func (c *UniquenessChecker) CheckUsername(ctx context.Context, username string) error {
	_, err := c.profiles.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return &model.ConflictError{Kind: model.ConflictUsernameTaken, Value: username}
	case errors.Is(err, model.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check username: %w", err)
	}
}

// FindByWallet returns the player linked to address, if any.
func (c *UniquenessChecker) FindByWallet(ctx context.Context, address string) (model.Player, bool, error) {
	player, err := c.profiles.FindByWalletAddress(ctx, address)
	switch {
	case err == nil:
		return player, true, nil
	case errors.Is(err, model.ErrNotFound):
		return model.Player{}, false, nil
	default:
		return model.Player{}, false, fmt.Errorf("failed to find player by wallet: %w", err)
	}
}
