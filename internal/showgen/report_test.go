package showgen

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func rankedEntry(rank int, song string, war float64, plays int) Entry {
	var e Entry
	e.Rank = rank
	e.Song = song
	e.WAR.CareerWAR = war
	e.Counting.TimesPlayed = plays
	return e
}

func TestVerifyLeaderboard(t *testing.T) {
	convey.Convey("Given leaderboard entries", t, func() {
		convey.Convey("When ranks and WAR both descend properly", func() {
			entries := []Entry{
				rankedEntry(1, "Tweezer", 5.1, 12),
				rankedEntry(2, "Ghost", 4.0, 9),
				rankedEntry(3, "Reba", 4.0, 7),
			}

			convey.So(verifyLeaderboard(entries), convey.ShouldBeNil)
		})

		convey.Convey("When the list is empty", func() {
			convey.So(verifyLeaderboard(nil), convey.ShouldNotBeNil)
		})

		convey.Convey("When rank numbering skips", func() {
			entries := []Entry{
				rankedEntry(1, "Tweezer", 5.1, 12),
				rankedEntry(3, "Ghost", 4.0, 9),
			}

			err := verifyLeaderboard(entries)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "rank")
		})

		convey.Convey("When a lower rank carries higher WAR", func() {
			entries := []Entry{
				rankedEntry(1, "Ghost", 4.0, 9),
				rankedEntry(2, "Tweezer", 5.1, 12),
			}

			convey.So(verifyLeaderboard(entries), convey.ShouldNotBeNil)
		})
	})
}

func TestRenderLeaderboard(t *testing.T) {
	convey.Convey("Given entries to render", t, func() {
		entries := []Entry{
			rankedEntry(1, "Tweezer", 5.1, 12),
			rankedEntry(2, "Ghost", 4.0, 9),
		}

		var buf bytes.Buffer
		renderLeaderboard(&buf, entries)

		convey.Convey("Then the table carries every song and its WAR", func() {
			convey.So(buf.String(), convey.ShouldContainSubstring, "Tweezer")
			convey.So(buf.String(), convey.ShouldContainSubstring, "Ghost")
			convey.So(buf.String(), convey.ShouldContainSubstring, "5.10")
		})
	})
}

func TestCrossCheckSongs(t *testing.T) {
	convey.Convey("Given a song endpoint", t, func() {
		entries := []Entry{
			rankedEntry(1, "Tweezer", 5.1, 12),
			rankedEntry(2, "Ghost", 4.0, 9),
		}

		convey.Convey("When the counts disagree", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"rank":1,"song":"Tweezer","counting":{"times_played":99}}`))
			}))
			defer srv.Close()

			stats := &Stats{}
			err := crossCheckSongs(context.Background(), newClient(srv.URL, time.Second), entries, stats)

			convey.Convey("Then it warns but keeps going", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats.SongsChecked, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the endpoint fails", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			}))
			defer srv.Close()

			stats := &Stats{}
			err := crossCheckSongs(context.Background(), newClient(srv.URL, time.Second), entries, stats)

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
