package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

type Service struct {
	userRepo      repository.UserRepository
	defaultRadius float64
	maxRadius     float64
}

func NewService(userRepo repository.UserRepository, defaultRadius, maxRadius float64) *Service {
	return &Service{
		userRepo:      userRepo,
		defaultRadius: defaultRadius,
		maxRadius:     maxRadius,
	}
}

// Get returns the caller's profile, creating it with defaults on first use.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	user = entity.NewUser(userID, s.defaultRadius)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return user, nil
}

type UpdateSettingsInput struct {
	SearchRadius *float64
	Home         *valueobject.GeoPoint
	ClearHome    bool
}

func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*entity.User, error) {
	if input.SearchRadius != nil {
		if err := s.ValidateRadius(*input.SearchRadius); err != nil {
			return nil, err
		}
	}
	if input.Home != nil && !input.Home.IsValid() {
		return nil, domain.ErrInvalidLocation
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.SearchRadius != nil {
		user.SearchRadiusMeters = *input.SearchRadius
	}
	switch {
	case input.ClearHome:
		user.Home = nil
	case input.Home != nil:
		home := *input.Home
		user.Home = &home
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// SearchRadius is the caller's saved radius, or the default for anonymous
// callers.
func (s *Service) SearchRadius(ctx context.Context, userID uuid.UUID) (float64, error) {
	if userID == uuid.Nil {
		return s.defaultRadius, nil
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.SearchRadiusMeters, nil
}

func (s *Service) ValidateRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return domain.ErrInvalidRadius
	}
	if s.maxRadius > 0 && radius > s.maxRadius {
		return fmt.Errorf("%w: %.0f > %.0f", domain.ErrRadiusTooLarge, radius, s.maxRadius)
	}
	return nil
}
