package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/okian/jamstats/internal/app"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/types"
	"github.com/okian/jamstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// seedCorpus builds a 30-show run with enough variety to rank.
func seedCorpus() []model.Track {
	var tracks []model.Track
	for i := 0; i < 30; i++ {
		date := fmt.Sprintf("1997-06-%02d", i+1)
		tracks = append(tracks,
			model.Track{Song: "Filler", ShowDate: date, Set: "Set 1", Position: 1, DurationSeconds: 300, Venue: "Arena", Location: "Burlington, VT"},
			model.Track{Song: "Closer", ShowDate: date, Set: "Set 1", Position: 9, DurationSeconds: 420, Venue: "Arena", Location: "Burlington, VT"},
		)
		if i%3 == 0 {
			tracks = append(tracks, model.Track{Song: "Tweezer", ShowDate: date, Set: "Set 2", Position: 4, DurationSeconds: 22 * 60, Jamchart: true, Venue: "Arena", Location: "Burlington, VT"})
		}
	}
	return tracks
}

func openFilter() model.Filter {
	f := model.DefaultFilter()
	f.MinTimesPlayed = 0
	f.MinShowsAppeared = 0
	return f
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(5_000),
			service.WithCacheSize(16),
			service.WithSeedTracks(seedCorpus()),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop(context.Background())

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats.Started, ShouldBeTrue)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				So(svc.Stop(ctx), ShouldBeNil)
				stats := svc.GetStats()
				So(stats.Started, ShouldBeFalse)
			})
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a stopped service", t, func() {
		svc := service.New()

		Convey("Then leaderboard queries fail with ErrNotStarted", func() {
			_, err := svc.Leaderboard(context.Background(), openFilter())
			So(err, ShouldEqual, service.ErrNotStarted)
		})
	})

	Convey("Given a started service seeded with the corpus", t, func() {
		svc := service.New(service.WithSeedTracks(seedCorpus()))
		defer svc.Stop(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When computing a leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, openFilter())

			Convey("Then every seeded song gets a ranked entry", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When computing twice with the same filter", func() {
			a, err := svc.Leaderboard(ctx, openFilter())
			So(err, ShouldBeNil)
			b, err := svc.Leaderboard(ctx, openFilter())
			So(err, ShouldBeNil)

			Convey("Then the memoized result is identical", func() {
				So(b, ShouldResemble, a)
			})
		})

		Convey("When looking up a single song", func() {
			entry, err := svc.Song(ctx, "Tweezer", openFilter())

			Convey("Then its full stat block comes back", func() {
				So(err, ShouldBeNil)
				So(entry.Song, ShouldEqual, "Tweezer")
				So(entry.Counting.TimesPlayed, ShouldEqual, 10)
			})
		})

		Convey("When looking up an unknown song", func() {
			_, err := svc.Song(ctx, "Fluffhead", openFilter())

			Convey("Then it reports not found", func() {
				So(err, ShouldEqual, service.ErrSongNotFound)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started, seeded service", t, func() {
		svc := service.New(service.WithSeedTracks(seedCorpus()))
		defer svc.Stop(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then dataset counts reflect the seed", func() {
				So(stats.Started, ShouldBeTrue)
				So(stats.DatasetTracks, ShouldEqual, 70)
				So(stats.DatasetShows, ShouldEqual, 30)
				So(stats.DatasetSongs, ShouldEqual, 3)
			})
		})
	})
}

func TestService_TourGapDefault(t *testing.T) {
	Convey("Given two show clusters twelve days apart", t, func() {
		var tracks []model.Track
		for _, date := range []string{"1997-06-01", "1997-06-02", "1997-06-03", "1997-06-15", "1997-06-16", "1997-06-17"} {
			tracks = append(tracks, model.Track{Song: "Tweezer", ShowDate: date, Set: "Set 2", Position: 4, DurationSeconds: 900, Venue: "Arena", Location: "Burlington, VT"})
		}

		f := openFilter()
		f.Aggregation = model.AggregationByTour

		distinctTours := func(entries []types.Entry) int {
			seen := make(map[string]struct{})
			for _, e := range entries {
				if e.Key != nil {
					seen[e.Key.TourID] = struct{}{}
				}
			}
			return len(seen)
		}

		Convey("With the standard gap the clusters form two tours", func() {
			svc := service.New(service.WithSeedTracks(tracks))
			defer svc.Stop(context.Background())
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)

			entries, err := svc.Leaderboard(ctx, f)
			So(err, ShouldBeNil)
			So(distinctTours(entries), ShouldEqual, 2)
		})

		Convey("With a configured thirty-day gap they merge into one", func() {
			svc := service.New(service.WithSeedTracks(tracks), service.WithTourGapDays(30))
			defer svc.Stop(context.Background())
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)

			entries, err := svc.Leaderboard(ctx, f)
			So(err, ShouldBeNil)
			So(distinctTours(entries), ShouldEqual, 1)
		})

		Convey("A request carrying its own gap wins over the configured default", func() {
			svc := service.New(service.WithSeedTracks(tracks), service.WithTourGapDays(30))
			defer svc.Stop(context.Background())
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)

			own := f
			own.TourGapDays = 5
			entries, err := svc.Leaderboard(ctx, own)
			So(err, ShouldBeNil)
			So(distinctTours(entries), ShouldEqual, 2)
		})
	})
}
