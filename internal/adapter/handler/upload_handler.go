package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/petfinder-backend/internal/usecase/upload"
)

const maxUploadSize = 10 << 20 // 10MB

type UploadHandler struct {
	uploadSvc UploadService
}

func NewUploadHandler(uploadSvc UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload godoc
//
//	@Summary	Attach a photo to a report
//	@Tags		photos
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		string	true	"Report ID"
//	@Param		file		formData	file	true	"JPEG or PNG image"
//	@Success	201			{object}	response.UploadResponse
//	@Failure	400			{object}	httputil.ErrorResponse
//	@Failure	403			{object}	httputil.ErrorResponse
//	@Failure	409			{object}	httputil.ErrorResponse
//	@Router		/reports/{id}/photos [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	reportID, ok := parseID(c, "id", "report")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httputil.HandleError(c, apperror.New(apperror.CodeInvalidFile, "file is required", http.StatusBadRequest))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isAllowedImageType(contentType) {
		httputil.HandleError(c, apperror.New(apperror.CodeInvalidType, "only jpeg and png images are allowed", http.StatusBadRequest))
		return
	}

	result, err := h.uploadSvc.Upload(c.Request.Context(), upload.UploadInput{
		UserID:      httputil.GetUserID(c),
		ReportID:    reportID,
		File:        file,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.Created(c, response.UploadResultToResponse(result))
}

// Delete godoc
//
//	@Summary	Delete a photo
//	@Tags		photos
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Photo ID"
//	@Success	204
//	@Failure	403	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/photos/{id} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	photoID, ok := parseID(c, "id", "photo")
	if !ok {
		return
	}

	if err := h.uploadSvc.Delete(c.Request.Context(), httputil.GetUserID(c), photoID); err != nil {
		respondError(c, err)
		return
	}

	httputil.NoContent(c)
}

func isAllowedImageType(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png" || contentType == "image/jpg"
}
