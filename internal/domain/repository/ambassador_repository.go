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

type AmbassadorRepository interface {
	Create(ctx context.Context, a *model.Ambassador) error
	FindByEmail(ctx context.Context, email string) (*model.Ambassador, error)
	FindByID(ctx context.Context, id string) (*model.Ambassador, error)
	FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	FindAllByCreatedAt(ctx context.Context) ([]*model.Ambassador, error)
	UpdateManualPoints(ctx context.Context, id string, manualPoints int) error
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	// IncrementReferrals bumps total_referrals by exactly 1 using a single
	// atomic UPDATE, never a read-modify-write. Returns ErrNotFound when no
	// ambassador carries the code.
	IncrementReferrals(ctx context.Context, code string) error
	Delete(ctx context.Context, id string) error
}

const ambassadorColumns = `id, name, email, hashed_password, phone, college, referral_code,
	          total_referrals, manual_points, role, created_at, updated_at`

type pgAmbassadorRepository struct {
	db *sql.DB
}

func NewPgAmbassadorRepository(db *sql.DB) AmbassadorRepository {
	return &pgAmbassadorRepository{db: db}
}

func (r *pgAmbassadorRepository) Create(ctx context.Context, a *model.Ambassador) error {
	query := `INSERT INTO ambassadors (id, name, email, hashed_password, phone, college, referral_code, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.HashedPassword, a.Phone, a.College, a.ReferralCode, a.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("ambassador with given email or referral code already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAmbassadorRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAmbassadorRepository) scanOne(row *sql.Row, op string) (*model.Ambassador, error) {
	a := &model.Ambassador{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.HashedPassword, &a.Phone, &a.College, &a.ReferralCode,
		&a.TotalReferrals, &a.ManualPoints, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAmbassadorRepository.%s: %w", op, err)
	}
	return a, nil
}

func (r *pgAmbassadorRepository) FindByEmail(ctx context.Context, email string) (*model.Ambassador, error) {
	query := `SELECT ` + ambassadorColumns + ` FROM ambassadors WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgAmbassadorRepository) FindByID(ctx context.Context, id string) (*model.Ambassador, error) {
	query := `SELECT ` + ambassadorColumns + ` FROM ambassadors WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgAmbassadorRepository) FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error) {
	query := `SELECT ` + ambassadorColumns + ` FROM ambassadors WHERE referral_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code), "FindByReferralCode")
}

func (r *pgAmbassadorRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ambassadors WHERE referral_code = $1)`
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgAmbassadorRepository.ReferralCodeExists: %w", err)
	}
	return exists, nil
}

func (r *pgAmbassadorRepository) FindAllByCreatedAt(ctx context.Context) ([]*model.Ambassador, error) {
	query := `SELECT ` + ambassadorColumns + ` FROM ambassadors ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAmbassadorRepository.FindAllByCreatedAt: %w", err)
	}
	defer rows.Close()

	var result []*model.Ambassador
	for rows.Next() {
		a := &model.Ambassador{}
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.HashedPassword, &a.Phone, &a.College, &a.ReferralCode,
			&a.TotalReferrals, &a.ManualPoints, &a.Role, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgAmbassadorRepository.FindAllByCreatedAt scan: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *pgAmbassadorRepository) UpdateManualPoints(ctx context.Context, id string, manualPoints int) error {
	query := `UPDATE ambassadors SET manual_points = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, manualPoints)
	if err != nil {
		return fmt.Errorf("pgAmbassadorRepository.UpdateManualPoints: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAmbassadorRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	query := `UPDATE ambassadors SET hashed_password = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("pgAmbassadorRepository.UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAmbassadorRepository) IncrementReferrals(ctx context.Context, code string) error {
	query := `UPDATE ambassadors
	          SET total_referrals = total_referrals + 1, updated_at = now()
	          WHERE referral_code = $1`
	res, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("pgAmbassadorRepository.IncrementReferrals: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAmbassadorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ambassadors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgAmbassadorRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
