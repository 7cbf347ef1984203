package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/blackjack-server/internal/model"
)

var _ model.IdentityRecordStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	db *Connection
}

func NewIdentityRepository(db *Connection) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

func (r *IdentityRepository) Create(ctx context.Context, record model.IdentityRecord) (model.IdentityRecord, error) {
	query := `INSERT INTO identities (id, email, password_hash, confirmed, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, email, password_hash, confirmed, created_at`

	var saved model.IdentityRecord
	err := r.db.QueryRow(ctx, query,
		record.ID, record.Email, record.PasswordHash, record.Confirmed, record.CreatedAt,
	).Scan(
		&saved.ID, &saved.Email, &saved.PasswordHash, &saved.Confirmed, &saved.CreatedAt,
	)
	if err != nil {
		return model.IdentityRecord{}, storeError("create identity", err)
	}

	return saved, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (model.IdentityRecord, error) {
	query := `SELECT id, email, password_hash, confirmed, created_at
			  FROM identities WHERE email = $1`

	var record model.IdentityRecord
	err := r.db.QueryRow(ctx, query, email).Scan(
		&record.ID, &record.Email, &record.PasswordHash, &record.Confirmed, &record.CreatedAt,
	)
	if err != nil {
		return model.IdentityRecord{}, storeError("get identity by email", err)
	}

	return record, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM identities WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return storeError("delete identity", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete identity %s: %w", id, model.ErrNotFound)
	}

	return nil
}
