package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/photo-locations/internal/pkg/apperror"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Data writes a pre-rendered body such as an exported dataset.
func Data(c *gin.Context, contentType string, body []byte) {
	c.Data(http.StatusOK, contentType, body)
}

func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: GetRequestID(c),
	})
}

func ValidationError(c *gin.Context, err error) {
	ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

func InternalError(c *gin.Context) {
	ErrorWithCode(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func HandleError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
		ErrorWithCode(c, appErr.StatusCode, appErr.Code, appErr.Message)
		return
	}
	_ = c.Error(err)
	InternalError(c)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
