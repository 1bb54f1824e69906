package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/hospital"
)

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	httputil.HandleError(c, toAppError(err))
}

func toAppError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		return apperror.NotFound("report")
	case errors.Is(err, domain.ErrHospitalNotFound):
		return apperror.NotFound("hospital")
	case errors.Is(err, domain.ErrPhotoNotFound):
		return apperror.NotFound("photo")
	case errors.Is(err, domain.ErrUserNotFound):
		return apperror.NotFound("profile")
	case errors.Is(err, domain.ErrForbidden):
		return apperror.Forbidden("access denied")
	case errors.Is(err, domain.ErrInvalidRadius):
		return apperror.InvalidRadius("radius must be a positive number of meters")
	case errors.Is(err, domain.ErrRadiusTooLarge):
		return apperror.RadiusTooLarge(err.Error())
	case errors.Is(err, domain.ErrInvalidLocation):
		return apperror.InvalidLocation("invalid coordinates")
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidSpecies),
		errors.Is(err, domain.ErrInvalidLayer),
		errors.Is(err, hospital.ErrInvalidHospital):
		return apperror.BadRequest(err.Error())
	case errors.Is(err, domain.ErrPhotoLimitReached):
		return apperror.PhotoLimit(entity.MaxPhotosPerReport)
	}
	return apperror.Internal(err)
}
