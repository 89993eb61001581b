package showgen

import (
	"context"
	"testing"

	"github.com/okian/jamstats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestScheduleShows(t *testing.T) {
	convey.Convey("Given a show schedule", t, func() {
		slots := scheduleShows(120)

		convey.Convey("Then it covers the requested number of shows", func() {
			convey.So(slots, convey.ShouldHaveLength, 120)
		})

		convey.Convey("And dates never move backwards", func() {
			for i := 1; i < len(slots); i++ {
				convey.So(slots[i].date >= slots[i-1].date, convey.ShouldBeTrue)
			}
		})

		convey.Convey("And every slot carries a venue and location", func() {
			for _, slot := range slots {
				convey.So(slot.venue.venue, convey.ShouldNotBeEmpty)
				convey.So(slot.venue.location, convey.ShouldNotBeEmpty)
				convey.So(slot.date, convey.ShouldHaveLength, 10)
			}
		})
	})
}

func TestGenerateShow(t *testing.T) {
	convey.Convey("Given a scheduled show", t, func() {
		slot := showSlot{
			date:  "1997-11-22",
			venue: venueStop{venue: "Hampton Coliseum", location: "Hampton, VA"},
		}

		tracks := generateShow(slot)

		convey.Convey("Then it produces a plausible setlist", func() {
			convey.So(len(tracks), convey.ShouldBeGreaterThan, 0)

			sets := map[string]bool{}
			for _, track := range tracks {
				sets[track.Set] = true
				convey.So(track.ShowDate, convey.ShouldEqual, "1997-11-22")
				convey.So(track.Venue, convey.ShouldEqual, "Hampton Coliseum")
				convey.So(track.Position, convey.ShouldBeGreaterThanOrEqualTo, 1)
				convey.So(track.DurationSeconds, convey.ShouldBeGreaterThan, 0)
			}
			convey.So(sets["Encore"], convey.ShouldBeTrue)
		})

		convey.Convey("And positions restart per set", func() {
			firstPositions := map[int]bool{}
			for _, track := range tracks {
				if track.Set == "Set 1" {
					firstPositions[track.Position] = true
				}
			}
			if len(firstPositions) > 0 {
				convey.So(firstPositions[1], convey.ShouldBeTrue)
			}
		})
	})
}

func TestGenerateCorpus(t *testing.T) {
	convey.Convey("Given a corpus config", t, func() {
		config := &Config{NumShows: 20, Workers: 4}
		stats := &Stats{}

		tracks, err := generateCorpus(context.Background(), config, stats)

		convey.Convey("Then tracks are generated for every show", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(stats.ShowsGenerated, convey.ShouldEqual, 20)
			convey.So(stats.TracksGenerated, convey.ShouldEqual, len(tracks))

			dates := map[string]bool{}
			for _, track := range tracks {
				dates[track.ShowDate] = true
			}
			convey.So(len(dates), convey.ShouldEqual, 20)
		})
	})
}

func TestChunkTracks(t *testing.T) {
	convey.Convey("Given a corpus to batch", t, func() {
		tracks := make([]TrackRecord, 25)

		convey.Convey("When the size divides unevenly", func() {
			batches := chunkTracks(tracks, 10)

			convey.So(batches, convey.ShouldHaveLength, 3)
			convey.So(batches[0], convey.ShouldHaveLength, 10)
			convey.So(batches[2], convey.ShouldHaveLength, 5)
		})

		convey.Convey("When the size is zero everything rides in one batch", func() {
			batches := chunkTracks(tracks, 0)

			convey.So(batches, convey.ShouldHaveLength, 1)
			convey.So(batches[0], convey.ShouldHaveLength, 25)
		})
	})
}
