package request

import "github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"

type ListHospitalsRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Type       string `form:"type" binding:"omitempty,oneof=hospital grooming"`
	PriceRange string `form:"price_range" binding:"omitempty,oneof=free low medium high"`
	Is24Hours  *bool  `form:"is_24_hours"`
	OpenNow    bool   `form:"open_now"`
}

// ImportPlaceRequest takes coordinates as they come from place directories:
// numbers, numeric strings or null.
type ImportPlaceRequest struct {
	PlaceID      string                 `json:"place_id" binding:"required,max=255"`
	Type         string                 `json:"type" binding:"omitempty,oneof=hospital grooming"`
	Name         string                 `json:"name" binding:"required,max=255"`
	Latitude     valueobject.Coordinate `json:"latitude"`
	Longitude    valueobject.Coordinate `json:"longitude"`
	Address      string                 `json:"address" binding:"max=255"`
	Phone        string                 `json:"phone" binding:"max=50"`
	Is24Hours    bool                   `json:"is_24_hours"`
	OpeningHours map[string]string      `json:"opening_hours"`
	Services     []string               `json:"services" binding:"omitempty,max=30,dive,max=50"`
	PriceRange   string                 `json:"price_range" binding:"omitempty,oneof=free low medium high"`
	Description  string                 `json:"description" binding:"max=2000"`
	Website      string                 `json:"website" binding:"omitempty,url,max=255"`
}
