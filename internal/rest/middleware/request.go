package middleware

import (
	"context"

	"github.com/billfold/billfold/internal/types"
	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware tags every request with an ID so log lines and
// error reports for one request can be correlated. Clients may supply
// their own via the X-Request-ID header.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateRequestID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// UserIDMiddleware copies the caller's identity header into the request
// context. Identity is established upstream; an empty value means the
// request is anonymous and user-scoped defaults fall back to config.
func UserIDMiddleware(c *gin.Context) {
	userID := c.GetHeader(types.HeaderUserID)
	if userID != "" {
		ctx := context.WithValue(c.Request.Context(), types.CtxUserID, userID)
		c.Request = c.Request.WithContext(ctx)
	}

	c.Next()
}
