package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/slotwise/slotwise/internal/adapters/http/api"
	"github.com/slotwise/slotwise/internal/adapters/http/swagger"
	service "github.com/slotwise/slotwise/internal/app"
	"github.com/slotwise/slotwise/internal/config"
	"github.com/slotwise/slotwise/pkg/logger"
	"github.com/slotwise/slotwise/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("SLOTWISE_ADDR", ":8080")
			_ = os.Setenv("SLOTWISE_WINDOW_DAYS", "3")
			_ = os.Setenv("SLOTWISE_SLOT_MINUTES", "45")
			defer func() {
				_ = os.Unsetenv("SLOTWISE_ADDR")
				_ = os.Unsetenv("SLOTWISE_WINDOW_DAYS")
				_ = os.Unsetenv("SLOTWISE_SLOT_MINUTES")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WindowDays, convey.ShouldEqual, 3)
				convey.So(cfg.SlotMinutes, convey.ShouldEqual, 45)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithScoreWeights(0.7, 0.3),
					service.WithCalendar(calendarOptions(config.New(context.Background()))...),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 1000)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestCalendarOptions(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When building calendar options", func() {
			opts := calendarOptions(cfg)

			convey.Convey("Then every calendar setting maps to an option", func() {
				// working hours, lunch, slot length, breaks, window
				convey.So(len(opts), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the window start is malformed", func() {
			cfg.WindowStart = "not-a-date"
			opts := calendarOptions(cfg)

			convey.Convey("Then the window option is dropped", func() {
				convey.So(len(opts), convey.ShouldEqual, 4)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should be creatable", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should be creatable", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics update", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateServiceMetrics(svc)
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("SLOTWISE_ADDR", ":8080")
			defer func() { _ = os.Unsetenv("SLOTWISE_ADDR") }()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				convey.So(logger.Init(), convey.ShouldBeNil)

				// Load configuration
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				// Create and start the service on the in-memory store
				svc := service.New(
					service.WithScoreWeights(cfg.FieldWeight, cfg.SkillWeight),
					service.WithCalendar(calendarOptions(cfg)...),
				)
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)

				// Create HTTP server
				server := api.NewServer(svc, svc, cfg.MaxScheduleLimit)
				convey.So(server, convey.ShouldNotBeNil)

				// Create HTTP mux
				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				// Register routes
				server.Register(ctx, mux)
				swagger.Register(ctx, mux)

				// Stop service
				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("SLOTWISE_WINDOW_DAYS", "0")
			defer func() { _ = os.Unsetenv("SLOTWISE_WINDOW_DAYS") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with out-of-range weights", func() {
			convey.Convey("Then the defaults are kept", func() {
				svc := service.New(
					service.WithScoreWeights(-1, 0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
