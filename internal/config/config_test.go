package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/jamstats/internal/config"
	"github.com/okian/jamstats/internal/domain/tours"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.Default()

		convey.Convey("Then every knob has a runnable value", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.CacheSize, convey.ShouldEqual, 64)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 500)
			convey.So(cfg.TourGapDays, convey.ShouldEqual, tours.DefaultGapDays)
			convey.So(cfg.ShutdownGraceSeconds, convey.ShouldEqual, 30)
			convey.So(cfg.SeedPath, convey.ShouldBeEmpty)
		})

		convey.Convey("Then it validates", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the shutdown grace converts to a duration", func() {
			convey.So(cfg.ShutdownGrace(), convey.ShouldEqual, 30*time.Second)
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given configurations with a single bad knob", t, func() {
		cases := []struct {
			name    string
			mutate  func(*config.Config)
			message string
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }, "addr must not be empty"},
			{"unknown log level", func(c *config.Config) { c.LogLevel = "verbose" }, "unknown log_level"},
			{"zero queue size", func(c *config.Config) { c.QueueSize = 0 }, "queue_size must be positive"},
			{"negative worker count", func(c *config.Config) { c.WorkerCount = -1 }, "worker_count must not be negative"},
			{"zero cache size", func(c *config.Config) { c.CacheSize = 0 }, "cache_size must be positive"},
			{"zero leaderboard limit", func(c *config.Config) { c.MaxLeaderboardLimit = 0 }, "max_leaderboard_limit must be positive"},
			{"negative tour gap", func(c *config.Config) { c.TourGapDays = -1 }, "tour_gap_days must not be negative"},
			{"zero shutdown grace", func(c *config.Config) { c.ShutdownGraceSeconds = 0 }, "shutdown_grace_seconds must be positive"},
		}

		for _, tc := range cases {
			convey.Convey("When validating a config with "+tc.name, func() {
				cfg := config.Default()
				tc.mutate(&cfg)

				err := cfg.Validate()

				convey.Convey("Then it reports an invalid config", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
					convey.So(err.Error(), convey.ShouldContainSubstring, tc.message)
				})
			})
		}

		convey.Convey("When worker_count is zero", func() {
			cfg := config.Default()
			cfg.WorkerCount = 0

			convey.Convey("Then it passes, the pool sizes itself later", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When a tour gap of zero is configured", func() {
			cfg := config.Default()
			cfg.TourGapDays = 0

			convey.Convey("Then it passes and falls through to the segmenter default", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
