package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/blackjack-server/internal/model"
)

var _ model.ChallengeStore = (*ChallengeStore)(nil)

// ChallengeStore keeps wallet sign-in nonces with a TTL. A nonce can be
// consumed once; GETDEL makes the read and the delete a single step.
type ChallengeStore struct {
	client *redis.Client
}

func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

func (s *ChallengeStore) Put(ctx context.Context, nonce string, address string, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, challengeKeyPrefix+nonce, address, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store challenge: %w: %w", model.ErrStoreUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("challenge nonce %s already exists", nonce)
	}
	return nil
}

func (s *ChallengeStore) Consume(ctx context.Context, nonce string) (string, error) {
	address, err := s.client.GetDel(ctx, challengeKeyPrefix+nonce).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to consume challenge: %w: %w", model.ErrStoreUnavailable, err)
	}
	return address, nil
}
