package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

// User is the local profile of an account owned by the identity service.
// ID is the token subject.
type User struct {
	ID                 uuid.UUID
	Home               *valueobject.GeoPoint
	SearchRadiusMeters float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewUser(id uuid.UUID, searchRadius float64) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 id,
		SearchRadiusMeters: searchRadius,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
