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

const hospitalColumns = `
	id, type, name,
	ST_Y(location::geometry) as lat, ST_X(location::geometry) as lng,
	address, phone, place_id, is_24_hours, opening_hours, services, price_range,
	rating, review_count, description, website, created_at, updated_at
`

type HospitalRepo struct {
	pool *pgxpool.Pool
}

func NewHospitalRepo(pool *pgxpool.Pool) *HospitalRepo {
	return &HospitalRepo{pool: pool}
}

func (r *HospitalRepo) Create(ctx context.Context, h *entity.Hospital) error {
	query := `
		INSERT INTO hospitals (id, type, name, location, address, phone, place_id, is_24_hours,
			opening_hours, services, price_range, rating, review_count, description, website,
			created_at, updated_at)
		VALUES ($1, $2, $3, ` + pointExpr(4) + `, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	lng, lat := pointArgs(h.Location)

	hours := h.OpeningHours
	if hours == nil {
		hours = valueobject.OpeningHours{}
	}
	services := h.Services
	if services == nil {
		services = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		h.ID, h.Type, h.Name, lng, lat,
		nullableString(h.Address), nullableString(h.Phone), nullableString(h.PlaceID), h.Is24Hours,
		hours, services, nullableString(string(h.PriceRange)),
		h.Rating, h.ReviewCount, nullableString(h.Description), nullableString(h.Website),
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting hospital: %w", err)
	}
	return nil
}

func (r *HospitalRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *HospitalRepo) GetByPlaceID(ctx context.Context, placeID string) (*entity.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE place_id = $1`
	return r.getOne(ctx, query, placeID)
}

func (r *HospitalRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Hospital, error) {
	h, err := scanHospital(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("querying hospital: %w", err)
	}
	return h, nil
}

func (r *HospitalRepo) List(ctx context.Context, params repository.HospitalListParams) ([]entity.Hospital, *pagination.Info, error) {
	conditions, args := hospitalConditions(params.Filter)
	argNum := len(args) + 1
	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM hospitals WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, fmt.Errorf("counting hospitals: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM hospitals
		WHERE %s
		ORDER BY rating DESC, name ASC
		LIMIT $%d OFFSET $%d
	`, hospitalColumns, whereClause, argNum, argNum+1)
	args = append(args, params.Pagination.Limit(), params.Pagination.Offset())

	hospitals, err := r.queryHospitals(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.NewInfo(params.Pagination, total)
	return hospitals, pageInfo, nil
}

func (r *HospitalRepo) ListCandidates(ctx context.Context, q repository.CandidateQuery, filter repository.HospitalFilter) ([]entity.Hospital, error) {
	conditions, args := hospitalConditions(filter)
	conditions, args, tail := candidateClause(q, conditions, args, "rating DESC, name ASC")

	query := fmt.Sprintf(`
		SELECT %s
		FROM hospitals
		WHERE %s
		%s
	`, hospitalColumns, strings.Join(conditions, " AND "), tail)

	return r.queryHospitals(ctx, query, args...)
}

func (r *HospitalRepo) queryHospitals(ctx context.Context, query string, args ...any) ([]entity.Hospital, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []entity.Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning hospital: %w", err)
		}
		hospitals = append(hospitals, *h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hospitals: %w", err)
	}
	return hospitals, nil
}

func hospitalConditions(f repository.HospitalFilter) ([]string, []any) {
	conditions := []string{"TRUE"}
	var args []any
	argNum := 1

	if f.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argNum))
		args = append(args, *f.Type)
		argNum++
	}
	if f.PriceRange != nil {
		conditions = append(conditions, fmt.Sprintf("price_range = $%d", argNum))
		args = append(args, *f.PriceRange)
		argNum++
	}
	if f.Is24Hours != nil {
		conditions = append(conditions, fmt.Sprintf("is_24_hours = $%d", argNum))
		args = append(args, *f.Is24Hours)
	}

	return conditions, args
}

func scanHospital(row pgx.Row) (*entity.Hospital, error) {
	var h entity.Hospital
	var lat, lng *float64
	var address, phone, placeID, priceRange, description, website *string

	if err := row.Scan(
		&h.ID, &h.Type, &h.Name,
		&lat, &lng,
		&address, &phone, &placeID, &h.Is24Hours, &h.OpeningHours, &h.Services, &priceRange,
		&h.Rating, &h.ReviewCount, &description, &website, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}

	h.Location = pointFromColumns(lat, lng)
	h.Address = stringValue(address)
	h.Phone = stringValue(phone)
	h.PlaceID = stringValue(placeID)
	h.PriceRange = entity.PriceRange(stringValue(priceRange))
	h.Description = stringValue(description)
	h.Website = stringValue(website)
	return &h, nil
}
