package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsoner"
	"github.com/reoring/jsoner/dsl"
	echomw "github.com/reoring/jsoner/middleware/echo"
)

func newServer() *echo.Echo {
	user := dsl.Record("User").Field("id", jsoner.String).MustBuild()
	e := echo.New()
	e.POST("/users", func(c echo.Context) error {
		u, ok := echomw.GetDecoded[*jsoner.Record](c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		id, _ := u.Get("id")
		return c.String(http.StatusOK, id.(string))
	}, echomw.ValidateJSON(user, jsoner.ParseOpt{}))
	return e
}

func TestValidateJSON(t *testing.T) {
	e := newServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"id":"u1"}`)))
	if rec.Code != http.StatusOK || rec.Body.String() != "u1" {
		t.Fatalf("want 200 u1, got %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"id":"a","id":"b"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), jsoner.CodeDuplicateKey) {
		t.Fatalf("want 400 duplicate_key, got %d %s", rec.Code, rec.Body)
	}
}
