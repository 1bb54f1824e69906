package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/pagination"
)

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PhotoResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func LocationFromPoint(p valueobject.GeoPoint) LocationResponse {
	return LocationResponse{Latitude: p.Latitude, Longitude: p.Longitude}
}

func PhotoFromEntity(p *entity.Photo) PhotoResponse {
	return PhotoResponse{
		ID:        p.ID,
		URL:       p.URL,
		MimeType:  p.MimeType,
		Size:      p.Size,
		Width:     p.Width,
		Height:    p.Height,
		CreatedAt: p.CreatedAt,
	}
}

func PhotosFromEntities(photos []entity.Photo) []PhotoResponse {
	result := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		result = append(result, PhotoFromEntity(&p))
	}
	return result
}

func PaginationFromInfo(info *pagination.Info) PaginationResponse {
	return PaginationResponse{
		Page:       info.Page,
		PerPage:    info.PerPage,
		TotalItems: info.TotalItems,
		TotalPages: info.TotalPages,
		HasNext:    info.HasNext,
		HasPrev:    info.HasPrev,
	}
}
