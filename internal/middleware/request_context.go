package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staydesk/backoffice-api/internal/utils"
)

const (
	// RequestIDHeader is echoed back on every response
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestContext assigns a request id and attaches the caller's IP and
// device info to the request context so services can attribute writes.
// An incoming X-Request-ID is kept when it parses as a UUID.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		info := utils.ClientFromGin(c, requestID)
		c.Request = c.Request.WithContext(utils.WithClient(c.Request.Context(), info))
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestContext
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
