package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
)

type ReportResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Category    string           `json:"category"`
	Status      string           `json:"status"`
	Species     string           `json:"species"`
	Breed       string           `json:"breed,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Location    LocationResponse `json:"location"`
	Address     string           `json:"address,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Contact     string           `json:"contact,omitempty"`
	Photos      []PhotoResponse  `json:"photos"`
	Views       int              `json:"views"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ReportsListResponse struct {
	Reports    []ReportResponse   `json:"reports"`
	Pagination PaginationResponse `json:"pagination"`
}

type NearbyReportResponse struct {
	ReportResponse
	DistanceMeters float64 `json:"distance_meters"`
}

type NearbyReportsResponse struct {
	Search  SearchResponse         `json:"search"`
	Reports []NearbyReportResponse `json:"reports"`
}

func ReportFromEntity(r *entity.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Category:    string(r.Category),
		Status:      string(r.Status),
		Species:     string(r.Species),
		Breed:       r.Breed,
		Name:        r.Name,
		Description: r.Description,
		Location:    LocationFromPoint(r.Location),
		Address:     r.Address,
		OccurredAt:  r.OccurredAt,
		Contact:     r.Contact,
		Photos:      PhotosFromEntities(r.Photos),
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ReportsFromEntities(reports []entity.Report) []ReportResponse {
	result := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		result = append(result, ReportFromEntity(&r))
	}
	return result
}

func NearbyReportsFromMatches(matches []proximity.Match[entity.Report]) []NearbyReportResponse {
	result := make([]NearbyReportResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, NearbyReportResponse{
			ReportResponse: ReportFromEntity(&m.Record),
			DistanceMeters: roundMeters(m.DistanceMeters),
		})
	}
	return result
}
