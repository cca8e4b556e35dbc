package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reoring/jsoner"
	"github.com/reoring/jsoner/middleware"
)

// ValidateJSON deserializes the request body as t with opt (or
// DefaultParseOpt when zero value), stores the value in the request context,
// and on failure aborts with 400 and an error payload.
func ValidateJSON(t jsoner.Type, opt jsoner.ParseOpt) gin.HandlerFunc {
	opt = middleware.OrDefault(opt)
	return func(c *gin.Context) {
		v, err := middleware.DecodeRequest(c.Request, t, opt)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context as T.
func GetDecoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}
