package response

import (
	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
)

type HospitalResponse struct {
	ID           uuid.UUID         `json:"id"`
	Type         string            `json:"type"`
	Name         string            `json:"name"`
	Location     *LocationResponse `json:"location"`
	Address      string            `json:"address,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	PlaceID      string            `json:"place_id,omitempty"`
	Is24Hours    bool              `json:"is_24_hours"`
	OpenNow      bool              `json:"open_now"`
	OpeningHours map[string]string `json:"opening_hours"`
	Services     []string          `json:"services"`
	PriceRange   string            `json:"price_range,omitempty"`
	Rating       float64           `json:"rating"`
	ReviewCount  int               `json:"review_count"`
	Description  string            `json:"description,omitempty"`
	Website      string            `json:"website,omitempty"`
}

type HospitalsListResponse struct {
	Hospitals  []HospitalResponse `json:"hospitals"`
	Pagination PaginationResponse `json:"pagination"`
}

type NearbyHospitalResponse struct {
	HospitalResponse
	DistanceMeters float64 `json:"distance_meters"`
}

type NearbyHospitalsResponse struct {
	Search    SearchResponse           `json:"search"`
	Hospitals []NearbyHospitalResponse `json:"hospitals"`
}

type ImportPlaceResponse struct {
	Hospital HospitalResponse `json:"hospital"`
	Created  bool             `json:"created"`
}

// HospitalFromEntity renders h; openNow is evaluated by the caller.
func HospitalFromEntity(h *entity.Hospital, openNow bool) HospitalResponse {
	resp := HospitalResponse{
		ID:           h.ID,
		Type:         string(h.Type),
		Name:         h.Name,
		Address:      h.Address,
		Phone:        h.Phone,
		PlaceID:      h.PlaceID,
		Is24Hours:    h.Is24Hours,
		OpenNow:      openNow,
		OpeningHours: h.OpeningHours,
		Services:     h.Services,
		PriceRange:   string(h.PriceRange),
		Rating:       h.Rating,
		ReviewCount:  h.ReviewCount,
		Description:  h.Description,
		Website:      h.Website,
	}
	if resp.OpeningHours == nil {
		resp.OpeningHours = map[string]string{}
	}
	if resp.Services == nil {
		resp.Services = []string{}
	}
	if p, ok := h.Position(); ok {
		loc := LocationFromPoint(p)
		resp.Location = &loc
	}
	return resp
}

func HospitalsFromEntities(hospitals []entity.Hospital, openNow func(*entity.Hospital) bool) []HospitalResponse {
	result := make([]HospitalResponse, 0, len(hospitals))
	for _, h := range hospitals {
		result = append(result, HospitalFromEntity(&h, openNow(&h)))
	}
	return result
}

func NearbyHospitalsFromMatches(matches []proximity.Match[entity.Hospital], openNow func(*entity.Hospital) bool) []NearbyHospitalResponse {
	result := make([]NearbyHospitalResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, NearbyHospitalResponse{
			HospitalResponse: HospitalFromEntity(&m.Record, openNow(&m.Record)),
			DistanceMeters:   roundMeters(m.DistanceMeters),
		})
	}
	return result
}
