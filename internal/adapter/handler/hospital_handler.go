package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
)

type HospitalHandler struct {
	hospitalSvc HospitalService
}

func NewHospitalHandler(hospitalSvc HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalSvc: hospitalSvc}
}

// List godoc
//
//	@Summary	List hospitals and groomers
//	@Tags		hospitals
//	@Produce	json
//	@Param		page		query		int		false	"Page"
//	@Param		per_page	query		int		false	"Items per page"
//	@Param		type		query		string	false	"hospital or grooming"
//	@Param		price_range	query		string	false	"free, low, medium or high"
//	@Param		is_24_hours	query		bool	false	"Only 24 hour places"
//	@Param		open_now	query		bool	false	"Only places open now"
//	@Success	200			{object}	response.HospitalsListResponse
//	@Failure	400			{object}	httputil.ErrorResponse
//	@Router		/hospitals [get]
func (h *HospitalHandler) List(c *gin.Context) {
	var req request.ListHospitalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	filter := hospital.Filter{Is24Hours: req.Is24Hours, OpenNow: req.OpenNow}
	if req.Type != "" {
		t := entity.HospitalType(req.Type)
		filter.Type = &t
	}
	if req.PriceRange != "" {
		p := entity.PriceRange(req.PriceRange)
		filter.PriceRange = &p
	}

	hospitals, pageInfo, err := h.hospitalSvc.List(c.Request.Context(), hospital.ListInput{
		Page:    req.Page,
		PerPage: req.PerPage,
		Filter:  filter,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.HospitalsListResponse{
		Hospitals:  response.HospitalsFromEntities(hospitals, h.hospitalSvc.IsOpenNow),
		Pagination: response.PaginationFromInfo(pageInfo),
	})
}

// Get godoc
//
//	@Summary	Get a hospital
//	@Tags		hospitals
//	@Produce	json
//	@Param		id	path		string	true	"Hospital ID"
//	@Success	200	{object}	response.HospitalResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/hospitals/{id} [get]
func (h *HospitalHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "hospital")
	if !ok {
		return
	}

	found, err := h.hospitalSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.HospitalFromEntity(found, h.hospitalSvc.IsOpenNow(found)))
}

// Import godoc
//
//	@Summary		Import a place
//	@Description	Store a hospital from a place directory once per place id
//	@Tags			hospitals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		request.ImportPlaceRequest	true	"Place"
//	@Success		200		{object}	response.ImportPlaceResponse	"Already known"
//	@Success		201		{object}	response.ImportPlaceResponse	"Created"
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Router			/hospitals/import [post]
func (h *HospitalHandler) Import(c *gin.Context) {
	var req request.ImportPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	imported, created, err := h.hospitalSvc.ImportPlace(c.Request.Context(), hospital.PlaceInput{
		PlaceID:      req.PlaceID,
		Type:         entity.HospitalType(req.Type),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		Phone:        req.Phone,
		Is24Hours:    req.Is24Hours,
		OpeningHours: valueobject.OpeningHours(req.OpeningHours),
		Services:     req.Services,
		PriceRange:   entity.PriceRange(req.PriceRange),
		Description:  req.Description,
		Website:      req.Website,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := response.ImportPlaceResponse{
		Hospital: response.HospitalFromEntity(imported, h.hospitalSvc.IsOpenNow(imported)),
		Created:  created,
	}
	if created {
		httputil.Created(c, resp)
		return
	}
	httputil.OK(c, resp)
}
