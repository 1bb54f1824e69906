package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/report"
)

type ReportHandler struct {
	reportSvc ReportService
}

func NewReportHandler(reportSvc ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Create godoc
//
//	@Summary		Create a report
//	@Description	Report a missing, found or rescued animal at a location
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		request.CreateReportRequest	true	"Report data"
//	@Success		201		{object}	response.ReportResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		401		{object}	httputil.ErrorResponse
//	@Router			/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req request.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	d := entity.ReportDetails{
		Category:    entity.ReportCategory(req.Category),
		Species:     entity.Species(req.Species),
		Breed:       req.Breed,
		Name:        req.Name,
		Description: req.Description,
		Location:    valueobject.NewGeoPoint(*req.Latitude, *req.Longitude),
		Address:     req.Address,
		Contact:     req.Contact,
	}
	if req.OccurredAt != nil {
		d.OccurredAt = req.OccurredAt.UTC()
	}

	r, err := h.reportSvc.Create(c.Request.Context(), report.CreateInput{
		UserID:  httputil.GetUserID(c),
		Details: d,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.Created(c, response.ReportFromEntity(r))
}

// List godoc
//
//	@Summary	List reports
//	@Tags		reports
//	@Produce	json
//	@Param		page		query		int		false	"Page"
//	@Param		per_page	query		int		false	"Items per page"
//	@Param		category	query		string	false	"missing, found or rescue"
//	@Param		status		query		string	false	"active, resolved or closed"
//	@Param		species		query		string	false	"dog, cat or other"
//	@Param		q			query		string	false	"Free text search"
//	@Success	200			{object}	response.ReportsListResponse
//	@Failure	400			{object}	httputil.ErrorResponse
//	@Router		/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	var req request.ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	input := report.ListInput{
		Page:    req.Page,
		PerPage: req.PerPage,
		Search:  req.Query,
	}
	if req.Category != "" {
		category := entity.ReportCategory(req.Category)
		input.Category = &category
	}
	if req.Status != "" {
		status := entity.ReportStatus(req.Status)
		input.Status = &status
	}
	if req.Species != "" {
		species := entity.Species(req.Species)
		input.Species = &species
	}

	reports, pageInfo, err := h.reportSvc.List(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ReportsListResponse{
		Reports:    response.ReportsFromEntities(reports),
		Pagination: response.PaginationFromInfo(pageInfo),
	})
}

// ListMine godoc
//
//	@Summary	List the caller's reports
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int	false	"Page"
//	@Param		per_page	query		int	false	"Items per page"
//	@Success	200			{object}	response.ReportsListResponse
//	@Router		/me/reports [get]
func (h *ReportHandler) ListMine(c *gin.Context) {
	var req request.ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	reports, pageInfo, err := h.reportSvc.ListMine(c.Request.Context(), httputil.GetUserID(c), req.Page, req.PerPage)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ReportsListResponse{
		Reports:    response.ReportsFromEntities(reports),
		Pagination: response.PaginationFromInfo(pageInfo),
	})
}

// Get godoc
//
//	@Summary	Get a report
//	@Tags		reports
//	@Produce	json
//	@Param		id	path		string	true	"Report ID"
//	@Success	200	{object}	response.ReportResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	reportID, ok := parseID(c, "id", "report")
	if !ok {
		return
	}

	r, err := h.reportSvc.GetByID(c.Request.Context(), reportID)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ReportFromEntity(r))
}

// Update godoc
//
//	@Summary	Update a report
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"Report ID"
//	@Param		request	body		request.UpdateReportRequest	true	"Fields to change"
//	@Success	200		{object}	response.ReportResponse
//	@Failure	403		{object}	httputil.ErrorResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Router		/reports/{id} [put]
func (h *ReportHandler) Update(c *gin.Context) {
	reportID, ok := parseID(c, "id", "report")
	if !ok {
		return
	}

	var req request.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		httputil.HandleError(c, apperror.InvalidLocation("latitude and longitude must be sent together"))
		return
	}

	input := report.UpdateInput{
		Breed:       req.Breed,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		OccurredAt:  req.OccurredAt,
		Contact:     req.Contact,
	}
	if req.Category != nil {
		category := entity.ReportCategory(*req.Category)
		input.Category = &category
	}
	if req.Species != nil {
		species := entity.Species(*req.Species)
		input.Species = &species
	}
	if req.Latitude != nil {
		loc := valueobject.NewGeoPoint(*req.Latitude, *req.Longitude)
		input.Location = &loc
	}

	r, err := h.reportSvc.Update(c.Request.Context(), httputil.GetUserID(c), reportID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ReportFromEntity(r))
}

// UpdateStatus godoc
//
//	@Summary	Change a report's status
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string								true	"Report ID"
//	@Param		request	body		request.UpdateReportStatusRequest	true	"New status"
//	@Success	200		{object}	response.ReportResponse
//	@Failure	403		{object}	httputil.ErrorResponse
//	@Router		/reports/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID, ok := parseID(c, "id", "report")
	if !ok {
		return
	}

	var req request.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	r, err := h.reportSvc.UpdateStatus(c.Request.Context(), httputil.GetUserID(c), reportID, entity.ReportStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ReportFromEntity(r))
}

// Delete godoc
//
//	@Summary	Delete a report
//	@Tags		reports
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Report ID"
//	@Success	204
//	@Failure	403	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	reportID, ok := parseID(c, "id", "report")
	if !ok {
		return
	}

	if err := h.reportSvc.Delete(c.Request.Context(), httputil.GetUserID(c), reportID); err != nil {
		respondError(c, err)
		return
	}

	httputil.NoContent(c)
}

func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httputil.HandleError(c, apperror.InvalidID(resource))
		return uuid.Nil, false
	}
	return id, true
}
