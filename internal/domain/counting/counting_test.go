package counting_test

import (
	"fmt"
	"testing"

	counting "github.com/okian/jamstats/internal/domain/counting"
	model "github.com/okian/jamstats/internal/domain/model"
	showindex "github.com/okian/jamstats/internal/domain/showindex"
	. "github.com/smartystreets/goconvey/convey"
)

// thirtyShows builds a 30-show corpus where "Filler" plays every night and
// "Rare" appears only at ordinals 0 and 29.
func thirtyShows() []model.Track {
	var tracks []model.Track
	for i := 0; i < 30; i++ {
		date := fmt.Sprintf("1997-06-%02d", i+1)
		tracks = append(tracks, model.Track{Song: "Filler", ShowDate: date, Set: "Set 1", Position: 1, DurationSeconds: 300})
		if i == 0 || i == 29 {
			tracks = append(tracks, model.Track{Song: "Rare", ShowDate: date, Set: "Set 1", Position: 2, DurationSeconds: 300})
		}
	}
	return tracks
}

func TestBustoutTiers(t *testing.T) {
	Convey("Given the bustout tier table", t, func() {
		Convey("Then bonuses carry the exact literal values", func() {
			So(counting.BustoutBonus(10), ShouldEqual, 0)
			So(counting.BustoutBonus(30), ShouldEqual, 0.5)
			So(counting.BustoutBonus(75), ShouldEqual, 1.0)
			So(counting.BustoutBonus(150), ShouldEqual, 1.5)
			So(counting.BustoutBonus(300), ShouldEqual, 2.5)
		})

		Convey("Then thresholds are inclusive lower bounds", func() {
			So(counting.TierFor(24), ShouldEqual, counting.TierNone)
			So(counting.TierFor(25), ShouldEqual, counting.TierBustout)
			So(counting.TierFor(50), ShouldEqual, counting.TierSignificant)
			So(counting.TierFor(100), ShouldEqual, counting.TierMajor)
			So(counting.TierFor(250), ShouldEqual, counting.TierHistoric)
		})

		Convey("Then the bonus is monotonic non-decreasing in gap", func() {
			prev := 0.0
			for gap := 0; gap <= 400; gap++ {
				b := counting.BustoutBonus(gap)
				So(b, ShouldBeGreaterThanOrEqualTo, prev)
				prev = b
			}
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given the 30-show corpus with a rare song at the bookends", t, func() {
		tracks := thirtyShows()
		ix := showindex.New(tracks)

		Convey("When computing counting stats", func() {
			cs := counting.Compute(tracks, ix)

			Convey("Then the rare song records one 29-show gap", func() {
				rare := cs["Rare"]
				So(rare.TimesPlayed, ShouldEqual, 2)
				So(rare.ShowsAppeared, ShouldEqual, 2)
				So(rare.MaxShowsBetweenPlays, ShouldEqual, 29)
				So(rare.AvgShowsBetweenPlays, ShouldEqual, 29.0)
				// A 29-show gap clears the bustout bar but not the mega tier.
				So(rare.BustoutCount, ShouldEqual, 1)
				So(rare.MegaBustoutCount, ShouldEqual, 0)
			})

			Convey("Then the nightly song has only single-show gaps", func() {
				filler := cs["Filler"]
				So(filler.TimesPlayed, ShouldEqual, 30)
				So(filler.MaxShowsBetweenPlays, ShouldEqual, 1)
				So(filler.BustoutCount, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a song with exactly one appearance", t, func() {
		tracks := []model.Track{{Song: "Icculus", ShowDate: "1994-06-18", DurationSeconds: 180, Jamchart: true}}
		cs := counting.Compute(tracks, showindex.New(tracks))

		Convey("Then gap figures are all zero by definition", func() {
			got := cs["Icculus"]
			So(got.MaxShowsBetweenPlays, ShouldEqual, 0)
			So(got.AvgShowsBetweenPlays, ShouldEqual, 0)
			So(got.BustoutCount, ShouldEqual, 0)
			So(got.JamchartCount, ShouldEqual, 1)
			So(got.TotalMinutes, ShouldEqual, 3.0)
		})
	})

	Convey("Given a song repeated within one show", t, func() {
		tracks := []model.Track{
			{Song: "Tweezer", ShowDate: "1997-11-22", Set: "Set 1", Position: 3, DurationSeconds: 600},
			{Song: "Tweezer", ShowDate: "1997-11-22", Set: "Set 2", Position: 5, DurationSeconds: 900},
		}
		ix := showindex.New(tracks)

		Convey("Then plays count both but appearances collapse to one show", func() {
			cs := counting.Compute(tracks, ix)
			So(cs["Tweezer"].TimesPlayed, ShouldEqual, 2)
			So(cs["Tweezer"].ShowsAppeared, ShouldEqual, 1)
			So(cs["Tweezer"].MaxShowsBetweenPlays, ShouldEqual, 0)
		})

		Convey("And the gap lookup holds no entry for the repeat", func() {
			gaps := counting.Gaps(counting.Appearances(tracks, ix), ix)
			So(gaps, ShouldBeEmpty)
		})
	})

	Convey("Given duration thresholds", t, func() {
		tracks := []model.Track{
			{Song: "Runaway Jim", ShowDate: "1997-11-29", DurationSeconds: 35 * 60},
			{Song: "Runaway Jim", ShowDate: "1997-12-06", DurationSeconds: 21 * 60},
			{Song: "Runaway Jim", ShowDate: "1997-12-07", DurationSeconds: 10 * 60},
		}
		cs := counting.Compute(tracks, showindex.New(tracks))

		Convey("Then 20- and 25-minute counts are inclusive at the bound", func() {
			So(cs["Runaway Jim"].PlaysOver20Min, ShouldEqual, 2)
			So(cs["Runaway Jim"].PlaysOver25Min, ShouldEqual, 1)
			So(cs["Runaway Jim"].TotalMinutes, ShouldEqual, 66.0)
		})
	})
}

func TestRates(t *testing.T) {
	Convey("Given counting stats and the song's own tracks", t, func() {
		tracks := []model.Track{
			{Song: "Hood", ShowDate: "1997-11-22", DurationSeconds: 12 * 60, Jamchart: true},
			{Song: "Hood", ShowDate: "1997-11-23", DurationSeconds: 14 * 60},
			{Song: "Hood", ShowDate: "1997-11-28", DurationSeconds: 22 * 60, Jamchart: true},
		}
		ix := showindex.New(tracks)
		cs := counting.Compute(tracks, ix)["Hood"]

		Convey("When deriving rates over a 10-show filtered set", func() {
			rs := counting.Rates(cs, tracks, 10)

			Convey("Then per-play and per-show rates line up", func() {
				So(rs.JamchartRate, ShouldAlmostEqual, 0.667, 0.001)
				So(rs.PlaysPerShow, ShouldEqual, 0.3)
				So(rs.ShowCoverage, ShouldEqual, 0.3)
				So(rs.LongPlayRate, ShouldAlmostEqual, 0.333, 0.001)
				So(rs.AvgDuration, ShouldEqual, 16.0)
				So(rs.MedianDuration, ShouldEqual, 14.0)
			})
		})

		Convey("When the filtered set somehow has zero shows", func() {
			rs := counting.Rates(cs, tracks, 0)

			Convey("Then per-show rates degrade to zero", func() {
				So(rs.PlaysPerShow, ShouldEqual, 0)
				So(rs.ShowCoverage, ShouldEqual, 0)
			})
		})
	})
}
