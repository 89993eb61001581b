package jis_test

import (
	"testing"

	jis "github.com/okian/jamstats/internal/domain/jis"
	model "github.com/okian/jamstats/internal/domain/model"
	scoring "github.com/okian/jamstats/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func perf(song, date string, pvs float64) scoring.Performance {
	return scoring.Performance{Track: model.Track{Song: song, ShowDate: date}, PVS: pvs}
}

func TestNormalize(t *testing.T) {
	Convey("Given the 0-10 normalization", t, func() {
		Convey("Then the bounds map to the scale ends", func() {
			So(jis.Normalize(0, 0, 10), ShouldEqual, 0)
			So(jis.Normalize(10, 0, 10), ShouldEqual, 10)
			So(jis.Normalize(5, 0, 10), ShouldEqual, 5)
		})

		Convey("Then a degenerate range yields the midpoint", func() {
			So(jis.Normalize(7, 7, 7), ShouldEqual, 5)
		})

		Convey("Then out-of-range inputs are clamped", func() {
			So(jis.Normalize(-5, 0, 10), ShouldEqual, 0)
			So(jis.Normalize(15, 0, 10), ShouldEqual, 10)
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given performances with a global range of 0..8", t, func() {
		perfs := []scoring.Performance{
			perf("Tweezer", "1997-06-01", 8),
			perf("Tweezer", "1997-06-02", 4),
			perf("Sample", "1997-06-01", 0),
			perf("Sample", "1997-06-02", 0),
		}

		Convey("When computing impact scores", func() {
			got := jis.Compute(perfs)

			Convey("Then normalization uses the global range, not per song", func() {
				tweezer := got["Tweezer"]
				So(tweezer.PeakJIS, ShouldEqual, 10.0)
				So(tweezer.AvgJIS, ShouldEqual, 7.5)        // (10 + 5) / 2
				So(tweezer.JISVolatility, ShouldEqual, 2.5) // population stddev of {10, 5}
				So(tweezer.Performances, ShouldEqual, 2)
			})

			Convey("Then a floor-dweller scores zeros with no volatility", func() {
				sample := got["Sample"]
				So(sample.AvgJIS, ShouldEqual, 0)
				So(sample.PeakJIS, ShouldEqual, 0)
				So(sample.JISVolatility, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a uniform PVS distribution", t, func() {
		perfs := []scoring.Performance{
			perf("Llama", "1994-05-01", 2.5),
			perf("Llama", "1994-05-02", 2.5),
		}

		Convey("Then every performance lands on the midpoint", func() {
			got := jis.Compute(perfs)["Llama"]
			So(got.AvgJIS, ShouldEqual, 5)
			So(got.PeakJIS, ShouldEqual, 5)
			So(got.JISVolatility, ShouldEqual, 0)
		})
	})

	Convey("Given no performances", t, func() {
		So(jis.Compute(nil), ShouldBeEmpty)
	})
}
