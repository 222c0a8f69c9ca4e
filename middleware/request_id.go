package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id on both request and response.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a correlation id to each request, preferring a
// client-supplied one so upstream proxies can trace through.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(RequestIDHeader, rid)
		ctx.Header(RequestIDHeader, rid)
		ctx.Next()
	}
}
