package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
)

const reportColumns = `
	id, user_id, category, status, species, breed, name, description,
	ST_Y(location::geometry) as lat, ST_X(location::geometry) as lng,
	address, occurred_at, contact, views, created_at, updated_at, deleted_at
`

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, user_id, category, status, species, breed, name, description,
			location, address, occurred_at, contact, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ` + pointExpr(9) + `, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.pool.Exec(ctx, query,
		report.ID, report.UserID, report.Category, report.Status, report.Species,
		nullableString(report.Breed), nullableString(report.Name), report.Description,
		report.Location.Longitude, report.Location.Latitude,
		nullableString(report.Address), report.OccurredAt, nullableString(report.Contact),
		report.Views, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("querying report: %w", err)
	}
	return report, nil
}

func (r *ReportRepo) List(ctx context.Context, params repository.ReportListParams) ([]entity.Report, *pagination.Info, error) {
	conditions, args := reportConditions(params.Filter)
	argNum := len(args) + 1
	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reports WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("counting reports: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, reportColumns, whereClause, argNum, argNum+1)
	args = append(args, params.Pagination.Limit(), params.Pagination.Offset())

	reports, err := r.queryReports(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.NewInfo(params.Pagination, total)
	return reports, pageInfo, nil
}

func (r *ReportRepo) ListCandidates(ctx context.Context, q repository.CandidateQuery, filter repository.ReportFilter) ([]entity.Report, error) {
	conditions, args := reportConditions(filter)
	conditions, args, tail := candidateClause(q, conditions, args, "created_at DESC")

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports
		WHERE %s
		%s
	`, reportColumns, strings.Join(conditions, " AND "), tail)

	return r.queryReports(ctx, query, args...)
}

func (r *ReportRepo) Update(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports
		SET category = $2, status = $3, species = $4, breed = $5, name = $6, description = $7,
			location = ` + pointExpr(8) + `, address = $10, occurred_at = $11, contact = $12,
			updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query,
		report.ID, report.Category, report.Status, report.Species,
		nullableString(report.Breed), nullableString(report.Name), report.Description,
		report.Location.Longitude, report.Location.Latitude,
		nullableString(report.Address), report.OccurredAt, nullableString(report.Contact),
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reports SET views = views + 1 WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("incrementing report views: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reports
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft deleting report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepo) queryReports(ctx context.Context, query string, args ...any) ([]entity.Report, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return reports, nil
}

func reportConditions(f repository.ReportFilter) ([]string, []any) {
	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argNum := 1

	if f.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argNum))
		args = append(args, *f.UserID)
		argNum++
	}
	if f.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argNum))
		args = append(args, *f.Category)
		argNum++
	}
	if f.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *f.Status)
		argNum++
	}
	if f.Species != nil {
		conditions = append(conditions, fmt.Sprintf("species = $%d", argNum))
		args = append(args, *f.Species)
		argNum++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(description ILIKE $%d OR breed ILIKE $%d OR name ILIKE $%d OR address ILIKE $%d)",
			argNum, argNum, argNum, argNum))
		args = append(args, "%"+f.Search+"%")
	}

	return conditions, args
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var report entity.Report
	var lat, lng float64
	var breed, name, address, contact *string

	if err := row.Scan(
		&report.ID, &report.UserID, &report.Category, &report.Status, &report.Species,
		&breed, &name, &report.Description,
		&lat, &lng,
		&address, &report.OccurredAt, &contact, &report.Views,
		&report.CreatedAt, &report.UpdatedAt, &report.DeletedAt,
	); err != nil {
		return nil, err
	}

	report.Location = valueobject.NewGeoPoint(lat, lng)
	report.Breed = stringValue(breed)
	report.Name = stringValue(name)
	report.Address = stringValue(address)
	report.Contact = stringValue(contact)
	return &report, nil
}
