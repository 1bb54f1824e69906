package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
)

const photoColumns = `id, report_id, url, key, mime_type, size, width, height, created_at`

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// Create attaches photo to a live report holding fewer than
// entity.MaxPhotosPerReport photos. The report row stays locked from the
// count to the insert, so parallel uploads cannot overshoot the cap.
func (r *PhotoRepo) Create(ctx context.Context, photo *entity.Photo) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var reportID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM reports WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
			photo.ReportID,
		).Scan(&reportID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReportNotFound
		}
		if err != nil {
			return fmt.Errorf("locking report: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE report_id = $1`, reportID).Scan(&count); err != nil {
			return fmt.Errorf("counting photos: %w", err)
		}
		if count >= entity.MaxPhotosPerReport {
			return domain.ErrPhotoLimitReached
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO photos (`+photoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			photo.ID, reportID, photo.URL, photo.Key,
			photo.MimeType, photo.Size, photo.Width, photo.Height, photo.CreatedAt,
		); err != nil {
			return fmt.Errorf("inserting photo: %w", err)
		}
		return nil
	})
}

func (r *PhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = $1`, id)
	photo, err := scanPhoto(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying photo: %w", err)
	}
	return photo, nil
}

// GetByReportID returns a report's photos in upload order.
func (r *PhotoRepo) GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entity.Photo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE report_id = $1 ORDER BY created_at, id`,
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}

	photos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Photo, error) {
		p, err := scanPhoto(row)
		if err != nil {
			return entity.Photo{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning photos: %w", err)
	}
	return photos, nil
}

func (r *PhotoRepo) CountByReportID(ctx context.Context, reportID uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE report_id = $1`, reportID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting photos: %w", err)
	}
	return count, nil
}

func (r *PhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (*entity.Photo, error) {
	var p entity.Photo
	if err := row.Scan(
		&p.ID, &p.ReportID, &p.URL, &p.Key,
		&p.MimeType, &p.Size, &p.Width, &p.Height, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
