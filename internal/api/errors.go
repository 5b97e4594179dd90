package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "scheme-finder/internal/common/errors"
)

var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeProfileValidationFailed: http.StatusBadRequest,
	apperrors.ErrCodeInvalidInput:            http.StatusBadRequest,
	apperrors.ErrCodeInvalidStatus:           http.StatusBadRequest,
	apperrors.ErrCodeProfileNotFound:         http.StatusNotFound,
	apperrors.ErrCodeSchemeNotFound:          http.StatusNotFound,
	apperrors.ErrCodeApplicationNotFound:     http.StatusNotFound,
	apperrors.ErrCodeDuplicateApplication:    http.StatusConflict,
	apperrors.ErrCodeCatalogEmpty:            http.StatusServiceUnavailable,
	apperrors.ErrCodeCatalogLoadFailed:       http.StatusServiceUnavailable,
	apperrors.ErrCodePredictorTimeout:        http.StatusRequestTimeout,
	apperrors.ErrCodePredictorUnavailable:    http.StatusBadGateway,
}

// httpStatus maps an error to a response status. Predictor status errors
// mirror the upstream status.
func httpStatus(e *apperrors.StandardError) int {
	if e.Code == apperrors.ErrCodePredictorBadResponse {
		if status, ok := e.Metadata["status"].(int); ok && status >= 400 {
			return status
		}
		return http.StatusBadGateway
	}
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	status := httpStatus(stdErr)

	body := gin.H{
		"success": false,
		"error":   stdErr.Message,
		"code":    stdErr.Code,
	}
	if fe, ok := stdErr.Metadata["fieldErrors"]; ok {
		body["fieldErrors"] = fe
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}
	c.AbortWithStatusJSON(status, body)
}
