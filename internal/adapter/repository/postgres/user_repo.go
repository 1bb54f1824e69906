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

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, home_location, search_radius, created_at, updated_at)
		VALUES ($1, ` + pointExpr(2) + `, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	lng, lat := pointArgs(user.Home)
	_, err := r.pool.Exec(ctx, query,
		user.ID, lng, lat, user.SearchRadiusMeters, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id,
			   ST_Y(home_location::geometry) as lat, ST_X(home_location::geometry) as lng,
			   search_radius, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user entity.User
	var lat, lng *float64
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &lat, &lng, &user.SearchRadiusMeters, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	user.Home = pointFromColumns(lat, lng)
	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET home_location = ` + pointExpr(2) + `, search_radius = $4, updated_at = $5
		WHERE id = $1
	`
	lng, lat := pointArgs(user.Home)
	result, err := r.pool.Exec(ctx, query,
		user.ID, lng, lat, user.SearchRadiusMeters, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
