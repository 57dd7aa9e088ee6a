package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ambassador_portal/internal/domain/model"
)

type UploadRepository interface {
	// Append adds an entry to the end of its category list.
	Append(ctx context.Context, u *model.Upload) error
	// ListByAmbassador returns all uploads grouped per category, ordered by
	// upload time. Every known category is present in the result, possibly
	// empty.
	ListByAmbassador(ctx context.Context, ambassadorID string) (model.UploadsByCategory, error)
	// UpdateEntry patches points and/or approval status of the entry matching
	// (category, publicID). Nil fields are left untouched. Returns false when
	// no entry matched; callers treat that as a silent no-op.
	UpdateEntry(ctx context.Context, ambassadorID, category, publicID string, points *int, approvalStatus *string) (bool, error)
	// ListPublicIDs returns the object identifiers of every upload owned by
	// the ambassador, for image-host cleanup on account deletion.
	ListPublicIDs(ctx context.Context, ambassadorID string) ([]string, error)
}

type pgUploadRepository struct {
	db *sql.DB
}

func NewPgUploadRepository(db *sql.DB) UploadRepository {
	return &pgUploadRepository{db: db}
}

func (r *pgUploadRepository) Append(ctx context.Context, u *model.Upload) error {
	query := `INSERT INTO uploads (id, ambassador_id, category, url, public_id, uploaded_at, approval_status, points)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.AmbassadorID, u.Category, u.URL, u.PublicID, u.UploadedAt, u.ApprovalStatus, u.Points)
	if err != nil {
		return fmt.Errorf("pgUploadRepository.Append: %w", err)
	}
	return nil
}

func (r *pgUploadRepository) ListByAmbassador(ctx context.Context, ambassadorID string) (model.UploadsByCategory, error) {
	query := `SELECT id, ambassador_id, category, url, public_id, uploaded_at, approval_status, points
	          FROM uploads WHERE ambassador_id = $1 ORDER BY uploaded_at ASC`
	rows, err := r.db.QueryContext(ctx, query, ambassadorID)
	if err != nil {
		return nil, fmt.Errorf("pgUploadRepository.ListByAmbassador: %w", err)
	}
	defer rows.Close()

	grouped := model.UploadsByCategory{}
	for _, c := range model.Categories {
		grouped[c] = []model.Upload{}
	}
	for rows.Next() {
		var u model.Upload
		if err := rows.Scan(&u.ID, &u.AmbassadorID, &u.Category, &u.URL, &u.PublicID,
			&u.UploadedAt, &u.ApprovalStatus, &u.Points); err != nil {
			return nil, fmt.Errorf("pgUploadRepository.ListByAmbassador scan: %w", err)
		}
		grouped[u.Category] = append(grouped[u.Category], u)
	}
	return grouped, rows.Err()
}

func (r *pgUploadRepository) UpdateEntry(ctx context.Context, ambassadorID, category, publicID string, points *int, approvalStatus *string) (bool, error) {
	query := `UPDATE uploads
	          SET points = COALESCE($4, points), approval_status = COALESCE($5, approval_status)
	          WHERE ambassador_id = $1 AND category = $2 AND public_id = $3`

	var pointsArg sql.NullInt64
	if points != nil {
		pointsArg = sql.NullInt64{Int64: int64(*points), Valid: true}
	}
	var statusArg sql.NullString
	if approvalStatus != nil {
		statusArg = sql.NullString{String: *approvalStatus, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, ambassadorID, category, publicID, pointsArg, statusArg)
	if err != nil {
		return false, fmt.Errorf("pgUploadRepository.UpdateEntry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *pgUploadRepository) ListPublicIDs(ctx context.Context, ambassadorID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT public_id FROM uploads WHERE ambassador_id = $1`, ambassadorID)
	if err != nil {
		return nil, fmt.Errorf("pgUploadRepository.ListPublicIDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgUploadRepository.ListPublicIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
