package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ClientInfo identifies who issued a request. It travels on the request
// context so services can attribute activity without seeing gin.
type ClientInfo struct {
	RequestID string
	IP        string
	UserAgent string
	Device    DeviceInfo
}

type clientKey struct{}

// ClientFromGin builds ClientInfo from the incoming request headers.
func ClientFromGin(c *gin.Context, requestID string) ClientInfo {
	userAgent := GetUserAgent(c)
	return ClientInfo{
		RequestID: requestID,
		IP:        GetRealIP(c),
		UserAgent: userAgent,
		Device:    ParseUserAgent(userAgent),
	}
}

// WithClient returns a copy of ctx carrying info.
func WithClient(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientKey{}, info)
}

// ClientFromContext returns the ClientInfo stored by WithClient, if any.
func ClientFromContext(ctx context.Context) (ClientInfo, bool) {
	info, ok := ctx.Value(clientKey{}).(ClientInfo)
	return info, ok
}
