package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/blackjack-server/internal/model"
)

// Ensure PlayerRepository implements the model.ProfileStore interface.
var _ model.ProfileStore = (*PlayerRepository)(nil)

const playerColumns = `id, user_id, username, wallet_address, bankroll, total_hands_played,
	hands_won, hands_lost, biggest_win, created_at, updated_at`

type PlayerRepository struct {
	db *Connection
}

func NewPlayerRepository(db *Connection) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.WalletAddress, &p.Bankroll, &p.TotalHandsPlayed,
		&p.HandsWon, &p.HandsLost, &p.BiggestWin, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *PlayerRepository) findOne(ctx context.Context, op, where string, arg any) (model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE ` + where + ` = $1`

	p, err := scanPlayer(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return model.Player{}, storeError(op, err)
	}

	return p, nil
}

func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Player, error) {
	return r.findOne(ctx, "get player by id", "id", id)
}

func (r *PlayerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Player, error) {
	return r.findOne(ctx, "get player by user id", "user_id", userID)
}

func (r *PlayerRepository) FindByUsername(ctx context.Context, username string) (model.Player, error) {
	return r.findOne(ctx, "get player by username", "username", username)
}

func (r *PlayerRepository) FindByWalletAddress(ctx context.Context, address string) (model.Player, error) {
	return r.findOne(ctx, "get player by wallet address", "wallet_address", address)
}

func (r *PlayerRepository) Insert(ctx context.Context, player model.Player) (model.Player, error) {
	query := `INSERT INTO players (id, user_id, username, wallet_address, bankroll, total_hands_played,
				hands_won, hands_lost, biggest_win, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING ` + playerColumns

	saved, err := scanPlayer(r.db.QueryRow(ctx, query,
		player.ID, player.UserID, player.Username, player.WalletAddress, player.Bankroll,
		player.TotalHandsPlayed, player.HandsWon, player.HandsLost, player.BiggestWin,
		player.CreatedAt, player.UpdatedAt,
	))
	if err != nil {
		return model.Player{}, storeError("insert player", err)
	}

	return saved, nil
}

func (r *PlayerRepository) ListTopByBankroll(ctx context.Context, limit int) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY bankroll DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, storeError("list players by bankroll", err)
	}
	defer rows.Close()

	players := make([]model.Player, 0, limit)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, storeError("scan player", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list players by bankroll", err)
	}

	return players, nil
}
