package showindex_test

import (
	"testing"

	model "github.com/okian/jamstats/internal/domain/model"
	showindex "github.com/okian/jamstats/internal/domain/showindex"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex(t *testing.T) {
	Convey("Given records spanning several shows", t, func() {
		tracks := []model.Track{
			{Song: "Harpua", ShowDate: "1997-12-30"},
			{Song: "Tweezer", ShowDate: "1997-11-22"},
			{Song: "Tweezer", ShowDate: "1998-07-29"},
			{Song: "Ghost", ShowDate: "1997-11-22"},
			{Song: "Ghost", ShowDate: "1997-12-30"},
		}

		Convey("When building the index", func() {
			ix := showindex.New(tracks)

			Convey("Then dates are deduplicated and sorted chronologically", func() {
				So(ix.Dates(), ShouldResemble, []string{"1997-11-22", "1997-12-30", "1998-07-29"})
				So(ix.Count(), ShouldEqual, 3)
			})

			Convey("And ordinals form a dense 0..N-1 permutation", func() {
				for i, d := range ix.Dates() {
					So(ix.Ordinal(d), ShouldEqual, i)
				}
			})

			Convey("And unknown dates fall back to ordinal 0", func() {
				So(ix.Ordinal("2099-01-01"), ShouldEqual, 0)
				So(ix.Contains("2099-01-01"), ShouldBeFalse)
				So(ix.Contains("1997-12-30"), ShouldBeTrue)
			})
		})
	})

	Convey("Given no records", t, func() {
		ix := showindex.New(nil)

		Convey("Then the index is empty and lookups fail safely", func() {
			So(ix.Count(), ShouldEqual, 0)
			So(ix.Dates(), ShouldBeEmpty)
			So(ix.Ordinal("1997-11-22"), ShouldEqual, 0)
		})
	})

	Convey("Given repeated calls on identical input", t, func() {
		tracks := []model.Track{
			{Song: "Reba", ShowDate: "1994-06-18"},
			{Song: "Stash", ShowDate: "1994-06-17"},
		}

		Convey("Then the result is identical and input is not mutated", func() {
			a := showindex.New(tracks)
			b := showindex.New(tracks)
			So(a.Dates(), ShouldResemble, b.Dates())
			So(tracks[0].ShowDate, ShouldEqual, "1994-06-18")
		})
	})
}
