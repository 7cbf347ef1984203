package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dtroode/blackjack-server/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini        *miniredis.Miniredis
	client      *redis.Client
	challenges  *ChallengeStore
	revocations *RevocationStore
	ctx         context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.challenges = NewChallengeStore(s.client)
	s.revocations = NewRevocationStore(s.client)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func (s *StoreSuite) TestChallenge_PutAndConsume() {
	s.Require().NoError(s.challenges.Put(s.ctx, "nonce-1", "0xabc", time.Minute))

	addr, err := s.challenges.Consume(s.ctx, "nonce-1")
	s.Require().NoError(err)
	s.Equal("0xabc", addr)

	_, err = s.challenges.Consume(s.ctx, "nonce-1")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *StoreSuite) TestChallenge_Expires() {
	s.Require().NoError(s.challenges.Put(s.ctx, "nonce-2", "0xabc", time.Minute))
	s.mini.FastForward(2 * time.Minute)

	_, err := s.challenges.Consume(s.ctx, "nonce-2")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *StoreSuite) TestChallenge_DuplicateNonce() {
	s.Require().NoError(s.challenges.Put(s.ctx, "nonce-3", "0xabc", time.Minute))
	s.Error(s.challenges.Put(s.ctx, "nonce-3", "0xdef", time.Minute))

	addr, err := s.challenges.Consume(s.ctx, "nonce-3")
	s.Require().NoError(err)
	s.Equal("0xabc", addr)
}

func (s *StoreSuite) TestChallenge_ConcurrentConsumeSucceedsOnce() {
	s.Require().NoError(s.challenges.Put(s.ctx, "nonce-4", "0xabc", time.Minute))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.challenges.Consume(s.ctx, "nonce-4"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
}

func (s *StoreSuite) TestChallenge_Unavailable() {
	s.mini.Close()

	err := s.challenges.Put(s.ctx, "nonce-5", "0xabc", time.Minute)
	s.ErrorIs(err, model.ErrStoreUnavailable)

	_, err = s.challenges.Consume(s.ctx, "nonce-5")
	s.ErrorIs(err, model.ErrStoreUnavailable)
}

func (s *StoreSuite) TestRevocation() {
	revoked, err := s.revocations.IsRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.revocations.Revoke(s.ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = s.revocations.IsRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	s.mini.FastForward(2 * time.Hour)
	revoked, err = s.revocations.IsRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *StoreSuite) TestRevocation_AlreadyExpired() {
	s.Require().NoError(s.revocations.Revoke(s.ctx, "jti-2", time.Now().Add(-time.Minute)))

	revoked, err := s.revocations.IsRevoked(s.ctx, "jti-2")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *StoreSuite) TestConnect_BadURL() {
	_, err := Connect(s.ctx, "not-a-url")
	s.Error(err)
}

func (s *StoreSuite) TestConnect() {
	client, err := Connect(s.ctx, "redis://"+s.mini.Addr())
	s.Require().NoError(err)
	s.NoError(client.Close())
}
