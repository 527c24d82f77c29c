package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/slotwise/slotwise/internal/adapters/http/api"
	service "github.com/slotwise/slotwise/internal/app"
	"github.com/slotwise/slotwise/internal/domain/schedule"
	"github.com/slotwise/slotwise/internal/domain/types"
	"github.com/slotwise/slotwise/pkg/logger"
)

var windowStart = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

const maxScheduleLimit = 100

// newTestMux wires the full API against a fresh in-memory service.
func newTestMux() (*http.ServeMux, *service.Service) {
	_ = logger.Init()
	svc := service.New(
		service.WithCalendar(schedule.WithWindow(windowStart, 5)),
	)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc, maxScheduleLimit).Register(context.Background(), mux)
	return mux, svc
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRosterEndpoints(t *testing.T) {
	Convey("Given the API over a fresh service", t, func() {
		mux, svc := newTestMux()
		defer svc.Stop()

		Convey("When a valid candidate is posted", func() {
			rec := doJSON(mux, http.MethodPost, "/candidates",
				`{"id":"c1","core_field":"Aerospace","email":"c1@test"}`)

			Convey("Then registration returns 201 with the id", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)

				var got struct {
					Status string `json:"status"`
					ID     string `json:"id"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Status, ShouldEqual, "registered")
				So(got.ID, ShouldEqual, "c1")
			})
		})

		Convey("When a candidate is posted without an id", func() {
			rec := doJSON(mux, http.MethodPost, "/candidates",
				`{"core_field":"Aerospace","email":"c@test"}`)

			Convey("Then an id is generated", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)

				var got struct {
					ID string `json:"id"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When required fields are missing", func() {
			Convey("Then a missing core_field is rejected", func() {
				rec := doJSON(mux, http.MethodPost, "/candidates", `{"email":"c@test"}`)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			})

			Convey("And a missing email is rejected", func() {
				rec := doJSON(mux, http.MethodPost, "/experts", `{"field_of_expertise":"Robotics"}`)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := doJSON(mux, http.MethodPost, "/candidates", `{not json`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the wrong method is used", func() {
			rec := doJSON(mux, http.MethodGet, "/candidates", "")

			Convey("Then the route is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a valid expert is posted", func() {
			rec := doJSON(mux, http.MethodPost, "/experts",
				`{"id":"e1","field_of_expertise":"Aerospace","email":"e1@test"}`)

			Convey("Then registration returns 201", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
			})
		})
	})
}

func TestScheduleEndpoints(t *testing.T) {
	Convey("Given a seeded roster", t, func() {
		mux, svc := newTestMux()
		defer svc.Stop()

		seed := []struct {
			path, body string
		}{
			{"/candidates", `{"id":"c1","core_field":"Aerospace","email":"c1@test"}`},
			{"/candidates", `{"id":"c2","core_field":"Aerospace","email":"c2@test"}`},
			{"/experts", `{"id":"e1","field_of_expertise":"Aerospace","email":"e1@test"}`},
		}
		for _, s := range seed {
			So(doJSON(mux, http.MethodPost, s.path, s.body).Code, ShouldEqual, http.StatusCreated)
		}

		Convey("When a scheduling run is triggered", func() {
			rec := doJSON(mux, http.MethodPost, "/schedule/run", "")

			Convey("Then the run reports the booked rows", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var got struct {
					Status    string              `json:"status"`
					Scheduled int                 `json:"scheduled"`
					Rows      []types.ScheduleRow `json:"rows"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Status, ShouldEqual, "ok")
				So(got.Scheduled, ShouldEqual, 2)
				So(got.Rows, ShouldHaveLength, 2)
				So(got.Rows[0].Date, ShouldEqual, "2025-05-01")
				So(got.Rows[0].StartTime, ShouldEqual, "10:00")
				So(got.Rows[1].StartTime, ShouldEqual, "10:30")
			})

			Convey("And the schedule read returns the same rows", func() {
				read := doJSON(mux, http.MethodGet, "/schedule", "")
				So(read.Code, ShouldEqual, http.StatusOK)

				var rows []types.ScheduleRow
				So(json.Unmarshal(read.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
			})

			Convey("And a limit truncates the read", func() {
				read := doJSON(mux, http.MethodGet, "/schedule?limit=1", "")
				So(read.Code, ShouldEqual, http.StatusOK)

				var rows []types.ScheduleRow
				So(json.Unmarshal(read.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
			})
		})

		Convey("When the limit parameter is invalid", func() {
			Convey("Then a non-numeric limit is rejected", func() {
				So(doJSON(mux, http.MethodGet, "/schedule?limit=abc", "").Code,
					ShouldEqual, http.StatusBadRequest)
			})

			Convey("And a zero limit is rejected", func() {
				So(doJSON(mux, http.MethodGet, "/schedule?limit=0", "").Code,
					ShouldEqual, http.StatusBadRequest)
			})

			Convey("And a limit over the cap is rejected", func() {
				rec := doJSON(mux, http.MethodGet, "/schedule?limit=101", "")
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When a run is triggered with GET", func() {
			So(doJSON(mux, http.MethodGet, "/schedule/run", "").Code,
				ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestScoreEndpoints(t *testing.T) {
	Convey("Given a seeded roster", t, func() {
		mux, svc := newTestMux()
		defer svc.Stop()

		So(doJSON(mux, http.MethodPost, "/candidates",
			`{"id":"c1","core_field":"Aerospace","email":"c1@test"}`).Code,
			ShouldEqual, http.StatusCreated)
		So(doJSON(mux, http.MethodPost, "/experts",
			`{"id":"e1","field_of_expertise":"Aerospace","email":"e1@test"}`).Code,
			ShouldEqual, http.StatusCreated)

		Convey("When similarity scores are requested", func() {
			rec := doJSON(mux, http.MethodGet, "/scores/similarity", "")

			Convey("Then the best pair is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var entries []types.ScoreEntry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].CandidateID, ShouldEqual, "c1")
				So(entries[0].ExpertID, ShouldEqual, "e1")
				So(entries[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When match scores are requested", func() {
			rec := doJSON(mux, http.MethodGet, "/scores/match", "")

			Convey("Then the weighted score is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var entries []types.ScoreEntry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When scores are requested with POST", func() {
			So(doJSON(mux, http.MethodPost, "/scores/similarity", "").Code,
				ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the API over a fresh service", t, func() {
		mux, svc := newTestMux()
		defer svc.Stop()

		Convey("When /stats is requested", func() {
			rec := doJSON(mux, http.MethodGet, "/stats", "")

			Convey("Then the service stats are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldBeTrue)
			})
		})

		Convey("When /healthz is requested", func() {
			rec := doJSON(mux, http.MethodGet, "/healthz", "")

			Convey("Then metrics exposition is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "slotwise_scheduler")
			})
		})

		Convey("When /dashboard is requested", func() {
			rec := doJSON(mux, http.MethodGet, "/dashboard", "")

			Convey("Then the embedded page is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			})
		})
	})
}
