//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/blackjack-server/internal/model"
	repo "github.com/dtroode/blackjack-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "blackjack_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/blackjack_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newIdentity(t *testing.T, ctx context.Context, ir *repo.IdentityRepository, email string) model.IdentityRecord {
	t.Helper()
	saved, err := ir.Create(ctx, model.IdentityRecord{
		Identity:     model.Identity{ID: uuid.New(), Email: email, Confirmed: true, CreatedAt: time.Now()},
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return saved
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ir := repo.NewIdentityRepository(conn)
	pr := repo.NewPlayerRepository(conn)

	t.Run("identity_repository", func(t *testing.T) {
		saved := newIdentity(t, ctx, ir, "user@example.com")
		require.True(t, saved.Confirmed)

		byEmail, err := ir.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.Equal(t, saved.ID, byEmail.ID)
		require.Equal(t, "hash", byEmail.PasswordHash)

		_, err = ir.Create(ctx, model.IdentityRecord{
			Identity:     model.Identity{ID: uuid.New(), Email: "user@example.com", Confirmed: true, CreatedAt: time.Now()},
			PasswordHash: "hash",
		})
		var uErr *model.UniqueViolationError
		require.ErrorAs(t, err, &uErr)
		require.Equal(t, "email", uErr.Field)

		require.NoError(t, ir.Delete(ctx, saved.ID))
		_, err = ir.GetByEmail(ctx, "user@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
		require.ErrorIs(t, ir.Delete(ctx, saved.ID), model.ErrNotFound)
	})

	t.Run("player_repository", func(t *testing.T) {
		identity := newIdentity(t, ctx, ir, "alice@example.com")
		p := model.NewPlayer(identity.ID, "alice", "")

		saved, err := pr.Insert(ctx, p)
		require.NoError(t, err)
		require.Equal(t, p.ID, saved.ID)
		require.True(t, decimal.NewFromInt(1000).Equal(saved.Bankroll))
		require.Nil(t, saved.WalletAddress)
		require.Zero(t, saved.TotalHandsPlayed)

		byName, err := pr.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, p.ID, byName.ID)

		byUser, err := pr.FindByUserID(ctx, identity.ID)
		require.NoError(t, err)
		require.Equal(t, p.ID, byUser.ID)

		byID, err := pr.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)

		_, err = pr.FindByUsername(ctx, "nobody")
		require.ErrorIs(t, err, model.ErrNotFound)

		other := newIdentity(t, ctx, ir, "alice2@example.com")
		_, err = pr.Insert(ctx, model.NewPlayer(other.ID, "alice", ""))
		var uErr *model.UniqueViolationError
		require.ErrorAs(t, err, &uErr)
		require.Equal(t, "username", uErr.Field)
	})

	t.Run("wallet_uniqueness", func(t *testing.T) {
		const addr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
		first := newIdentity(t, ctx, ir, addr+"@"+model.WalletEmailDomain)
		_, err := pr.Insert(ctx, model.NewPlayer(first.ID, "walletone", addr))
		require.NoError(t, err)

		found, err := pr.FindByWalletAddress(ctx, addr)
		require.NoError(t, err)
		require.Equal(t, "walletone", found.Username)

		second := newIdentity(t, ctx, ir, "second@example.com")
		_, err = pr.Insert(ctx, model.NewPlayer(second.ID, "wallettwo", addr))
		var uErr *model.UniqueViolationError
		require.ErrorAs(t, err, &uErr)
		require.Equal(t, "wallet_address", uErr.Field)
	})
}

func TestPlayerRepository_ListTopByBankroll(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(ctx, `TRUNCATE players`)
	require.NoError(t, err)

	pr := repo.NewPlayerRepository(conn)
	for i, bankroll := range []int64{500, 2500, 1000, 4000} {
		p := model.NewPlayer(uuid.New(), "ranked"+strconv.Itoa(i), "")
		p.UserID = nil
		p.Bankroll = decimal.NewFromInt(bankroll)
		_, err := pr.Insert(ctx, p)
		require.NoError(t, err)
	}

	top, err := pr.ListTopByBankroll(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.True(t, decimal.NewFromInt(4000).Equal(top[0].Bankroll))
	require.True(t, decimal.NewFromInt(2500).Equal(top[1].Bankroll))
	require.True(t, decimal.NewFromInt(1000).Equal(top[2].Bankroll))
}

func TestConnection_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	conn.Close()

	_, err = repo.NewPlayerRepository(conn).FindByUsername(ctx, "alice")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}
