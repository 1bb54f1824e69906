package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrHospitalNotFound   = errors.New("hospital not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrInvalidLocation    = errors.New("invalid location")
	ErrInvalidRadius      = errors.New("radius must be a positive number of meters")
	ErrRadiusTooLarge     = errors.New("radius exceeds the allowed maximum")
	ErrInvalidStatus      = errors.New("invalid report status")
	ErrInvalidCategory    = errors.New("invalid report category")
	ErrInvalidSpecies     = errors.New("invalid species")
	ErrInvalidZoomTable   = errors.New("invalid zoom table")
	ErrPhotoLimitReached  = errors.New("photo limit reached")
	ErrInvalidLayer       = errors.New("invalid map layer")
)
