package showgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/jamstats/pkg/logger"
	"github.com/olekukonko/tablewriter"
)

// songsToCheck caps the per-song endpoint cross-check.
const songsToCheck = 3

// crossCheckSongs confirms the top entries agree with the song endpoint
// on play counts. Disagreements warn rather than fail: the run may
// still be racing a straggler batch.
func crossCheckSongs(ctx context.Context, cl *client, entries []Entry, stats *Stats) error {
	n := min(songsToCheck, len(entries))
	log := logger.Get()

	for _, want := range entries[:n] {
		got, err := cl.song(ctx, want.Song)
		if err != nil {
			return fmt.Errorf("song %q: %w", want.Song, err)
		}
		if got.Counting.TimesPlayed != want.Counting.TimesPlayed {
			log.Warn(ctx, "song play count disagrees with leaderboard",
				logger.String("song", want.Song),
				logger.Int("leaderboard", want.Counting.TimesPlayed),
				logger.Int("songEndpoint", got.Counting.TimesPlayed))
		}
		stats.SongsChecked++
	}

	log.Info(ctx, "cross-checked top songs", logger.Int("songs", stats.SongsChecked))
	return nil
}

// verifyLeaderboard checks rank numbering and the career WAR ordering.
func verifyLeaderboard(entries []Entry) error {
	if len(entries) == 0 {
		return errors.New("leaderboard came back empty")
	}

	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("entry %d carries rank %d", i, e.Rank)
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].WAR.CareerWAR > entries[i-1].WAR.CareerWAR {
			return fmt.Errorf("rank %d has higher WAR than rank %d", entries[i].Rank, entries[i-1].Rank)
		}
	}
	return nil
}

// renderLeaderboard prints the entries as a terminal table.
func renderLeaderboard(w io.Writer, entries []Entry) {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Song", "Plays", "Shows", "Jams", "Total Min", "WAR", "Avg JIS"})

	for _, e := range entries {
		table.Append([]string{
			strconv.Itoa(e.Rank),
			e.Song,
			strconv.Itoa(e.Counting.TimesPlayed),
			strconv.Itoa(e.Counting.ShowsAppeared),
			strconv.Itoa(e.Counting.JamchartCount),
			strconv.FormatFloat(e.Counting.TotalMinutes, 'f', 1, 64),
			strconv.FormatFloat(e.WAR.CareerWAR, 'f', 2, 64),
			strconv.FormatFloat(e.JIS.AvgJIS, 'f', 2, 64),
		})
	}
	_ = table.Render()
}
