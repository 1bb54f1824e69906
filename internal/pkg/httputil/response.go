package httputil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	// Fields maps an offending request field to the rule it broke.
	Fields map[string]string `json:"fields,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ValidationError reports a failed bind. Validator failures are broken
// down per field; anything else (malformed JSON, bad number) is passed
// through as the message.
func ValidationError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Error:     err.Error(),
		Code:      apperror.CodeValidation,
		RequestID: GetRequestID(c),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Error = "request validation failed"
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			resp.Fields[fieldName(fe)] = rule
		}
	}

	c.JSON(http.StatusBadRequest, resp)
}

func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func HandleError(c *gin.Context, err error) {
	c.JSON(statusAndBody(c, err))
}

// Abort is HandleError for middleware: the rest of the chain is skipped.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusAndBody(c, err))
}

func statusAndBody(c *gin.Context, err error) (int, ErrorResponse) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	return appErr.StatusCode, ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: GetRequestID(c),
	}
}

func GetUserID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get("user_id"); exists {
		return id.(uuid.UUID)
	}
	return uuid.Nil
}

func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
