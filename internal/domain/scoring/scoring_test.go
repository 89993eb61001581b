package scoring_test

import (
	"fmt"
	"testing"

	model "github.com/okian/jamstats/internal/domain/model"
	scoring "github.com/okian/jamstats/internal/domain/scoring"
	showindex "github.com/okian/jamstats/internal/domain/showindex"
	. "github.com/smartystreets/goconvey/convey"
)

func TestYearDurations(t *testing.T) {
	Convey("Given records across two years", t, func() {
		tracks := []model.Track{
			{Song: "Stash", ShowDate: "1995-06-14", DurationSeconds: 600},
			{Song: "Stash", ShowDate: "1995-07-02", DurationSeconds: 800},
			{Song: "Stash", ShowDate: "1996-08-16", DurationSeconds: 500},
		}

		Convey("When computing yearly duration stats", func() {
			ys := scoring.YearDurations(tracks)

			Convey("Then the population deviation is used, rounded whole", func() {
				So(ys[1995].Mean, ShouldEqual, 700)
				So(ys[1995].StdDev, ShouldEqual, 100) // population: sqrt(((100)^2+(100)^2)/2)
				So(ys[1995].Count, ShouldEqual, 2)
				So(ys[1996].StdDev, ShouldEqual, 0)
			})

			Convey("And a zero deviation z-scores to exactly 0", func() {
				So(ys[1996].ZScore(500), ShouldEqual, 0)
				So(ys[1996].ZScore(9999), ShouldEqual, 0)
			})

			Convey("And a normal year z-scores linearly", func() {
				So(ys[1995].ZScore(800), ShouldEqual, 1.0)
				So(ys[1995].ZScore(600), ShouldEqual, -1.0)
			})
		})
	})
}

func TestSetLeverage(t *testing.T) {
	Convey("Given a two-set show with an encore", t, func() {
		tracks := []model.Track{
			{Song: "Chalk Dust", ShowDate: "1997-11-22", Set: "Set 1", Position: 1},
			{Song: "Theme", ShowDate: "1997-11-22", Set: "Set 1", Position: 4},
			{Song: "Ghost", ShowDate: "1997-11-22", Set: "Set 2", Position: 1},
			{Song: "Loving Cup", ShowDate: "1997-11-22", Set: "Set 2", Position: 6},
			{Song: "Hood", ShowDate: "1997-11-22", Set: "Set 2", Position: 3},
			{Song: "Bouncing", ShowDate: "1997-11-22", Set: "Encore", Position: 1},
		}
		bounds := scoring.SetBounds(tracks)

		Convey("Then set 1 opener gets 0.5 x 1.0 x 0.75", func() {
			So(scoring.SetLeverage(tracks[0], bounds), ShouldAlmostEqual, 0.375)
		})

		Convey("Then set 1 closer gets 0.75 x 1.0 x 0.75", func() {
			So(scoring.SetLeverage(tracks[1], bounds), ShouldAlmostEqual, 0.5625)
		})

		Convey("Then set 2 slots carry the 1.2 multiplier", func() {
			So(scoring.SetLeverage(tracks[2], bounds), ShouldAlmostEqual, 0.5*1.2*0.75)
			So(scoring.SetLeverage(tracks[3], bounds), ShouldAlmostEqual, 0.75*1.2*0.75)
		})

		Convey("Then a middle slot carries nothing", func() {
			So(scoring.SetLeverage(tracks[4], bounds), ShouldEqual, 0)
		})

		Convey("Then an encore gets the full base regardless of position", func() {
			So(scoring.SetLeverage(tracks[5], bounds), ShouldAlmostEqual, 0.75)
		})
	})

	Convey("Given a single-song set", t, func() {
		tracks := []model.Track{{Song: "Tweezer Reprise", ShowDate: "1997-11-22", Set: "Set 3", Position: 1}}
		bounds := scoring.SetBounds(tracks)

		Convey("Then it classifies as the opener, per evaluation order", func() {
			So(scoring.ClassifyPosition(tracks[0], bounds), ShouldEqual, scoring.PositionOpener)
			So(scoring.SetLeverage(tracks[0], bounds), ShouldAlmostEqual, 0.5*1.3*0.75)
		})
	})
}

func TestRarity(t *testing.T) {
	Convey("Given the rarity formula", t, func() {
		So(scoring.Rarity(100, 100), ShouldEqual, 0)
		So(scoring.Rarity(1, 100), ShouldEqual, 0.99)
		So(scoring.Rarity(0, 0), ShouldEqual, 0)
	})
}

func TestScorer(t *testing.T) {
	Convey("Given the 30-show corpus with a rare bookend song", t, func() {
		var tracks []model.Track
		for i := 0; i < 30; i++ {
			date := fmt.Sprintf("1997-06-%02d", i+1)
			tracks = append(tracks, model.Track{Song: "Filler", ShowDate: date, Set: "Set 1", Position: 1, DurationSeconds: 300, Venue: "Somewhere"})
			if i == 0 || i == 29 {
				tracks = append(tracks, model.Track{Song: "Rare", ShowDate: date, Set: "Set 1", Position: 2, DurationSeconds: 300, Venue: "Somewhere"})
			}
		}
		ix := showindex.New(tracks)
		scorer := scoring.NewScorer(tracks, ix)

		Convey("When scoring every performance", func() {
			perfs := scorer.ScoreAll(tracks)

			var rare []scoring.Performance
			for _, p := range perfs {
				if p.Track.Song == "Rare" {
					rare = append(rare, p)
				}
			}

			Convey("Then the first appearance has a zero bustout component", func() {
				So(rare[0].Bustout, ShouldEqual, 0)
			})

			Convey("Then the 29-show return scores the tier-25 bonus", func() {
				So(rare[1].Bustout, ShouldEqual, 0.5)
			})

			Convey("Then rarity reflects the year's play volume", func() {
				// 32 performances in 1997, Rare played twice.
				So(rare[0].Rarity, ShouldAlmostEqual, 1-2.0/32.0)
			})

			Convey("Then the sum equals its components, unclamped", func() {
				for _, p := range perfs {
					So(p.PVS, ShouldAlmostEqual,
						p.Length+p.JamBonus+p.Bustout+p.SetLeverage+p.RunLeverage+p.Rarity)
				}
			})
		})
	})

	Convey("Given jam and duration bonuses", t, func() {
		tracks := []model.Track{
			{Song: "Tweezer", ShowDate: "1997-11-22", Set: "Set 2", Position: 2, DurationSeconds: 26 * 60, Jamchart: true},
			{Song: "Taste", ShowDate: "1997-11-22", Set: "Set 2", Position: 1, DurationSeconds: 8 * 60},
			{Song: "Ghost", ShowDate: "1997-11-22", Set: "Set 2", Position: 3, DurationSeconds: 21 * 60},
		}
		scorer := scoring.NewScorer(tracks, showindex.New(tracks))

		Convey("Then the additive bonus can reach the full 3.0", func() {
			So(scorer.Score(tracks[0]).JamBonus, ShouldEqual, 3.0) // 1.5 + 0.5 + 1.0
			So(scorer.Score(tracks[1]).JamBonus, ShouldEqual, 0)
			So(scorer.Score(tracks[2]).JamBonus, ShouldEqual, 0.5)
		})
	})

	Convey("Given a show at a leveraged venue", t, func() {
		tracks := []model.Track{
			{Song: "Tweezer", ShowDate: "1997-08-17", Set: "Set 1", Position: 1, DurationSeconds: 600, Venue: "The Great Went, Loring AFB"},
		}
		scorer := scoring.NewScorer(tracks, showindex.New(tracks))

		Convey("Then the run-leverage term carries the festival multiplier", func() {
			So(scorer.Score(tracks[0]).RunLeverage, ShouldEqual, 1.25)
		})
	})
}
