package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reoring/jsoner"
	"github.com/reoring/jsoner/middleware"
)

// ValidateJSON deserializes the request body as t with opt (or
// DefaultParseOpt when zero value), stores the value in the request context
// on success, or answers 400 with an error payload.
func ValidateJSON(t jsoner.Type, opt jsoner.ParseOpt) echo.MiddlewareFunc {
	opt = middleware.OrDefault(opt)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.DecodeRequest(c.Request(), t, opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context as T.
func GetDecoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}
