package delivery

import (
	"errors"
	"net/http"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/internal/summary/dto"
	"meeting-notes-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgRateLimit   = "Rate limit exceeded. Please try again in a moment."
	msgQuota       = "API quota exceeded. Please try again later."
	msgInvalidKey  = "Invalid API key. Please check your configuration."
	msgNotFound    = "Summary not found"
	msgFileTooBig  = "File size too large. Maximum 10MB allowed."
	msgBodyTooBig  = "Request body too large. Maximum %dMB allowed."
	msgOnlyTxt     = "Only .txt files are allowed"
	msgNoInput     = "No file or text provided"
	msgNeedText    = "Text is required"
	msgNeedSummary = "Summary content is required"
	msgNeedShare   = "Summary ID and recipients are required"
)

// respondError maps a domain error to its HTTP status. fallback is the
// message used for storage and unclassified failures.
func respondError(c *gin.Context, err error, fallback string) {
	var (
		verr *domain.ValidationError
		uerr *domain.UpstreamError
		derr *domain.DeliveryError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Message})
		return
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msgNotFound})
		return
	}

	logger.ErrorErr(c.Request.Context(), "request failed", err, "route", c.FullPath())

	switch {
	case errors.As(err, &uerr):
		switch uerr.Kind {
		case domain.UpstreamRateLimit:
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: msgRateLimit})
		case domain.UpstreamQuota:
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: msgQuota})
		case domain.UpstreamAuth:
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: msgInvalidKey})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback + ": " + uerr.Err.Error()})
		}
	case errors.As(err, &derr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback, Results: derr.Results})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}
