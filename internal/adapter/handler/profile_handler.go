package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileSvc ProfileService
}

func NewProfileHandler(profileSvc ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Get godoc
//
//	@Summary	Get the caller's profile
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.ProfileResponse
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Router		/me [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.profileSvc.Get(c.Request.Context(), httputil.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ProfileFromEntity(user))
}

// Update godoc
//
//	@Summary	Update search settings
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		request.UpdateProfileRequest	true	"Settings"
//	@Success	200		{object}	response.ProfileResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Router		/me [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	if (req.HomeLat == nil) != (req.HomeLng == nil) {
		httputil.HandleError(c, apperror.InvalidLocation("home latitude and longitude must be sent together"))
		return
	}

	input := profile.UpdateSettingsInput{
		SearchRadius: req.SearchRadius,
		ClearHome:    req.ClearHome,
	}
	if req.HomeLat != nil {
		home := valueobject.NewGeoPoint(*req.HomeLat, *req.HomeLng)
		input.Home = &home
	}

	user, err := h.profileSvc.UpdateSettings(c.Request.Context(), httputil.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OK(c, response.ProfileFromEntity(user))
}
