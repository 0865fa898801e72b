package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/blob"
	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/middleware"
	"github.com/staydesk/backoffice-api/internal/services"
	"github.com/staydesk/backoffice-api/pkg/validator"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// BatchResponse is returned by the batch create endpoints
type BatchResponse[T any] struct {
	Created  []T                      `json:"created"`
	Failures []services.RecordFailure `json:"failures"`
}

// respondError maps service and store errors onto HTTP status codes
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	resp := ErrorResponse{RequestID: middleware.GetRequestID(c)}

	var verr *services.ValidationError
	var berr *database.BackendError
	switch {
	case errors.As(err, &verr):
		resp.Error = "validation_error"
		resp.Message = err.Error()
		resp.Fields = verr.Fields
		c.JSON(http.StatusBadRequest, resp)
	case database.IsNotFound(err):
		resp.Error = "not_found"
		resp.Message = err.Error()
		c.JSON(http.StatusNotFound, resp)
	case database.IsConflict(err):
		resp.Error = "conflict"
		resp.Message = err.Error()
		c.JSON(http.StatusConflict, resp)
	case errors.As(err, &berr):
		logger.WithFields(logrus.Fields{
			"request_id": resp.RequestID,
			"op":         berr.Op,
			"collection": berr.Collection,
			"error":      berr.Error(),
		}).Error("Record store failure")
		resp.Error = "backend_failure"
		resp.Message = "The record store is unavailable"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, blob.ErrExists):
		resp.Error = "conflict"
		resp.Message = err.Error()
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, services.ErrExportDisabled):
		resp.Error = "export_disabled"
		resp.Message = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
	default:
		logger.WithError(err).WithField("request_id", resp.RequestID).Error("Unhandled request error")
		resp.Error = "internal_error"
		resp.Message = "Something went wrong"
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// bindJSON binds and validates the body, writing a 400 on failure
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_error",
			Message:   "Invalid request body",
			Fields:    validator.Messages(err),
			RequestID: middleware.GetRequestID(c),
		})
		return false
	}
	return true
}

// bindBatch decodes a JSON array without validating it. Each record is
// validated by the service so one bad record does not reject the batch.
func bindBatch[T any](c *gin.Context) ([]T, bool) {
	var reqs []T
	if err := json.NewDecoder(c.Request.Body).Decode(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_error",
			Message:   "Request body must be a JSON array: " + err.Error(),
			RequestID: middleware.GetRequestID(c),
		})
		return nil, false
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_error",
			Message:   "At least one record is required",
			RequestID: middleware.GetRequestID(c),
		})
		return nil, false
	}
	return reqs, true
}

// respondBatch writes 201 when every record was created and 207 otherwise
func respondBatch[T any](c *gin.Context, logger *logrus.Logger, created []T, err error) {
	if created == nil {
		created = []T{}
	}
	var partial *services.PartialFailureError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, BatchResponse[T]{Created: created, Failures: []services.RecordFailure{}})
	case errors.As(err, &partial):
		c.JSON(http.StatusMultiStatus, BatchResponse[T]{Created: created, Failures: partial.Failures})
	default:
		respondError(c, logger, err)
	}
}

// parseID reads the :id path parameter, writing a 400 when it is not a
// positive integer
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid_id",
			Message:   "id must be a positive integer",
			RequestID: middleware.GetRequestID(c),
		})
		return 0, false
	}
	return id, true
}

// bindQuery binds query parameters into a filter struct
func bindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_error",
			Message:   "Invalid query parameters: " + err.Error(),
			RequestID: middleware.GetRequestID(c),
		})
		return false
	}
	return true
}
