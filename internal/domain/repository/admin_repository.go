package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type AdminRepository interface {
	Create(ctx context.Context, a *model.Admin) error
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	// Upsert creates the admin account or refreshes name/password of an
	// existing one, keyed by email. Used by the bootstrap command.
	Upsert(ctx context.Context, a *model.Admin) error
}

type pgAdminRepository struct {
	db *sql.DB
}

func NewPgAdminRepository(db *sql.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Create(ctx context.Context, a *model.Admin) error {
	query := `INSERT INTO admins (id, name, email, hashed_password) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("admin with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAdminRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `SELECT id, name, email, hashed_password, created_at FROM admins WHERE lower(email) = lower($1)`
	a := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.HashedPassword, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByEmail: %w", err)
	}
	return a, nil
}

func (r *pgAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	query := `SELECT id, name, email, hashed_password, created_at FROM admins WHERE id = $1`
	a := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.HashedPassword, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAdminRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET hashed_password = $2 WHERE id = $1`, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("pgAdminRepository.UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAdminRepository) Upsert(ctx context.Context, a *model.Admin) error {
	query := `INSERT INTO admins (id, name, email, hashed_password)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT ((lower(email)))
	          DO UPDATE SET name = EXCLUDED.name, hashed_password = EXCLUDED.hashed_password`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.HashedPassword)
	if err != nil {
		return fmt.Errorf("pgAdminRepository.Upsert: %w", err)
	}
	return nil
}
