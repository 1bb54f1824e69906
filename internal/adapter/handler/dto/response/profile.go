package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
)

type ProfileResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Home               *LocationResponse `json:"home,omitempty"`
	SearchRadiusMeters float64           `json:"search_radius_meters"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func ProfileFromEntity(u *entity.User) ProfileResponse {
	resp := ProfileResponse{
		ID:                 u.ID,
		SearchRadiusMeters: u.SearchRadiusMeters,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if u.Home != nil {
		home := LocationFromPoint(*u.Home)
		resp.Home = &home
	}
	return resp
}
