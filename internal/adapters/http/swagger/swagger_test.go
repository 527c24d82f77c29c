package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/slotwise/slotwise/internal/adapters/http/swagger"
)

func TestRegister(t *testing.T) {
	Convey("Given a mux with the docs routes registered", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("When /openapi.yaml is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			Convey("Then the embedded spec is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(rec.Body.String(), ShouldContainSubstring, "openapi:")
				So(rec.Body.String(), ShouldContainSubstring, "/schedule/run")
			})
		})

		Convey("When /api-docs is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			Convey("Then the ReDoc page is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "redoc")
				So(rec.Body.String(), ShouldContainSubstring, "/openapi.yaml")
			})
		})
	})
}

func TestRegisterNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("When Register is called", func() {
			Convey("Then it panics", func() {
				So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
			})
		})
	})
}

func TestOpenAPIEmbedded(t *testing.T) {
	Convey("Given the embedded spec", t, func() {
		Convey("Then it is non-empty and names the core paths", func() {
			spec := string(swagger.OpenAPI)
			So(spec, ShouldNotBeEmpty)
			for _, p := range []string{"/candidates", "/experts", "/schedule", "/scores/similarity", "/scores/match"} {
				So(strings.Contains(spec, p), ShouldBeTrue)
			}
		})
	})
}
