package showgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/okian/jamstats/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Set labels and sizing for generated shows.
const (
	set1Size   = 8
	set2Size   = 7
	encoreSize = 1
)

// Multi-night run shaping.
const (
	maxRunNights  = 3
	tourGapDays   = 45
	showGapDays   = 2
	startYear     = 1994
	showsPerYear  = 80
	secondsPerMin = 60
)

// songProfile describes how a song behaves in the generated corpus.
type songProfile struct {
	name      string
	playProb  float64 // chance of appearing in any given show
	baseMin   float64 // typical duration in minutes
	spreadMin float64 // random spread on top of baseMin
	jamProb   float64 // chance a performance lands on the jamchart
	secondSet bool    // jam vehicles live in the second set
}

// songCatalog is a rough cross-section of a touring band's book: a few
// jam vehicles, a core of standards, and a tail of rarities.
var songCatalog = []songProfile{
	{name: "Tweezer", playProb: 0.35, baseMin: 14, spreadMin: 14, jamProb: 0.30, secondSet: true},
	{name: "You Enjoy Myself", playProb: 0.30, baseMin: 18, spreadMin: 8, jamProb: 0.25, secondSet: true},
	{name: "Ghost", playProb: 0.25, baseMin: 12, spreadMin: 12, jamProb: 0.28, secondSet: true},
	{name: "Down with Disease", playProb: 0.28, baseMin: 11, spreadMin: 12, jamProb: 0.22, secondSet: true},
	{name: "Simple", playProb: 0.22, baseMin: 9, spreadMin: 10, jamProb: 0.18, secondSet: true},
	{name: "Piper", playProb: 0.20, baseMin: 10, spreadMin: 9, jamProb: 0.20, secondSet: true},
	{name: "Bathtub Gin", playProb: 0.22, baseMin: 10, spreadMin: 10, jamProb: 0.20},
	{name: "Reba", playProb: 0.25, baseMin: 12, spreadMin: 4, jamProb: 0.12},
	{name: "Stash", playProb: 0.25, baseMin: 11, spreadMin: 5, jamProb: 0.12},
	{name: "Divided Sky", playProb: 0.22, baseMin: 14, spreadMin: 3, jamProb: 0.06},
	{name: "Run Like an Antelope", playProb: 0.24, baseMin: 10, spreadMin: 4, jamProb: 0.10},
	{name: "Maze", playProb: 0.22, baseMin: 9, spreadMin: 3, jamProb: 0.08},
	{name: "Chalk Dust Torture", playProb: 0.30, baseMin: 7, spreadMin: 8, jamProb: 0.10},
	{name: "Possum", playProb: 0.28, baseMin: 8, spreadMin: 3, jamProb: 0.06},
	{name: "Mike's Song", playProb: 0.22, baseMin: 9, spreadMin: 6, jamProb: 0.12, secondSet: true},
	{name: "Weekapaug Groove", playProb: 0.22, baseMin: 8, spreadMin: 5, jamProb: 0.10, secondSet: true},
	{name: "Harry Hood", playProb: 0.24, baseMin: 13, spreadMin: 5, jamProb: 0.14, secondSet: true},
	{name: "Slave to the Traffic Light", playProb: 0.18, baseMin: 11, spreadMin: 4, jamProb: 0.10, secondSet: true},
	{name: "Wilson", playProb: 0.25, baseMin: 5, spreadMin: 2, jamProb: 0.02},
	{name: "Golgi Apparatus", playProb: 0.24, baseMin: 5, spreadMin: 1, jamProb: 0.01},
	{name: "Cavern", playProb: 0.26, baseMin: 5, spreadMin: 1, jamProb: 0.01},
	{name: "Bouncing Around the Room", playProb: 0.24, baseMin: 4, spreadMin: 1, jamProb: 0.01},
	{name: "Sample in a Jar", playProb: 0.24, baseMin: 5, spreadMin: 1, jamProb: 0.01},
	{name: "Fee", playProb: 0.10, baseMin: 5, spreadMin: 2, jamProb: 0.02},
	{name: "The Lizards", playProb: 0.12, baseMin: 10, spreadMin: 2, jamProb: 0.04},
	{name: "Fluffhead", playProb: 0.10, baseMin: 14, spreadMin: 2, jamProb: 0.06},
	{name: "Destiny Unbound", playProb: 0.02, baseMin: 6, spreadMin: 2, jamProb: 0.05},
	{name: "Icculus", playProb: 0.01, baseMin: 4, spreadMin: 2, jamProb: 0.05},
	{name: "Harpua", playProb: 0.03, baseMin: 12, spreadMin: 6, jamProb: 0.15, secondSet: true},
	{name: "Tela", playProb: 0.02, baseMin: 6, spreadMin: 1, jamProb: 0.02},
}

// venueStop pairs a venue with its location.
type venueStop struct {
	venue    string
	location string
}

var venueCircuit = []venueStop{
	{venue: "Madison Square Garden", location: "New York, NY"},
	{venue: "Hampton Coliseum", location: "Hampton, VA"},
	{venue: "Red Rocks Amphitheatre", location: "Morrison, CO"},
	{venue: "The Gorge Amphitheatre", location: "George, WA"},
	{venue: "Alpine Valley Music Theatre", location: "East Troy, WI"},
	{venue: "Deer Creek Music Center", location: "Noblesville, IN"},
	{venue: "Great Woods", location: "Mansfield, MA"},
	{venue: "Nectar's", location: "Burlington, VT"},
	{venue: "The Flynn Theatre", location: "Burlington, VT"},
	{venue: "Roseland Ballroom", location: "New York, NY"},
	{venue: "The Spectrum", location: "Philadelphia, PA"},
	{venue: "Shoreline Amphitheatre", location: "Mountain View, CA"},
	{venue: "Big Cypress", location: "Big Cypress, FL"},
	{venue: "Dick's Sporting Goods Park", location: "Commerce City, CO"},
	{venue: "O2 Arena", location: "London, England"},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// showSlot fixes a show's calendar placement before tracks are generated,
// so the concurrent workers never race on date arithmetic.
type showSlot struct {
	date  string
	venue venueStop
}

// generateCorpus creates tracks for the configured number of shows.
func generateCorpus(ctx context.Context, config *Config, stats *Stats) ([]TrackRecord, error) {
	logger.Get().Info(ctx, "generating show corpus", logger.Int("numShows", config.NumShows))

	slots := scheduleShows(config.NumShows)

	// Generate shows concurrently; each worker owns a contiguous slice of
	// slots so the per-show track groups stay in date order.
	type showResult struct {
		index  int
		tracks []TrackRecord
		err    error
	}

	resultChan := make(chan showResult, config.NumShows)

	workerCount := max(1, min(config.Workers, config.NumShows))
	showsPerWorker := config.NumShows / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * showsPerWorker
		end := start + showsPerWorker
		if worker == workerCount-1 {
			end = config.NumShows // Last worker gets remaining shows
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- showResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- showResult{index: i, tracks: generateShow(slots[i])}
				}
			}
		}(start, end)
	}

	// Collect results in slot order
	perShow := make([][]TrackRecord, config.NumShows)
	for i := 0; i < config.NumShows; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during corpus generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate show %d: %w", result.index, result.err)
			}
			perShow[result.index] = result.tracks
		}
	}

	var tracks []TrackRecord
	for _, st := range perShow {
		tracks = append(tracks, st...)
	}

	stats.ShowsGenerated = config.NumShows
	stats.TracksGenerated = len(tracks)
	logger.Get().Info(ctx, "generated corpus successfully",
		logger.Int("shows", config.NumShows),
		logger.Int("tracks", len(tracks)))

	return tracks, nil
}

// scheduleShows lays shows out on the calendar: multi-night runs at one
// venue, short hops between stops, and a long gap between tours.
func scheduleShows(numShows int) []showSlot {
	slots := make([]showSlot, 0, numShows)
	current := time.Date(startYear, time.June, 1, 0, 0, 0, 0, time.UTC)
	venueIdx := 0
	showsThisYear := 0

	for len(slots) < numShows {
		stop := venueCircuit[venueIdx%len(venueCircuit)]
		nights := 1 + getRandomInt(maxRunNights)

		for n := 0; n < nights && len(slots) < numShows; n++ {
			slots = append(slots, showSlot{
				date:  current.Format("2006-01-02"),
				venue: stop,
			})
			current = current.AddDate(0, 0, 1)
			showsThisYear++
		}

		venueIdx++

		if showsThisYear >= showsPerYear {
			// Tour over; pick the next year up in June.
			current = time.Date(current.Year()+1, time.June, 1, 0, 0, 0, 0, time.UTC)
			showsThisYear = 0
		} else if venueIdx%5 == 0 {
			// Between legs of the tour.
			current = current.AddDate(0, 0, tourGapDays)
		} else {
			current = current.AddDate(0, 0, showGapDays)
		}
	}

	return slots
}

// generateShow fills a show's three sets from the song catalog.
func generateShow(slot showSlot) []TrackRecord {
	firstSet := make([]songProfile, 0, set1Size)
	secondSet := make([]songProfile, 0, set2Size)

	for _, song := range songCatalog {
		if getRandomFloat() >= song.playProb {
			continue
		}
		if song.secondSet && len(secondSet) < set2Size {
			secondSet = append(secondSet, song)
		} else if len(firstSet) < set1Size {
			firstSet = append(firstSet, song)
		}
	}

	// Backfill thin sets so every show has a plausible shape.
	for len(firstSet) < set1Size/2 {
		firstSet = append(firstSet, songCatalog[getRandomInt(len(songCatalog))])
	}
	if len(secondSet) == 0 {
		secondSet = append(secondSet, songCatalog[getRandomInt(len(songCatalog))])
	}

	encore := songCatalog[getRandomInt(len(songCatalog))]

	tracks := make([]TrackRecord, 0, len(firstSet)+len(secondSet)+encoreSize)
	tracks = append(tracks, renderSet(slot, "Set 1", firstSet)...)
	tracks = append(tracks, renderSet(slot, "Set 2", secondSet)...)
	tracks = append(tracks, renderSet(slot, "Encore", []songProfile{encore})...)
	return tracks
}

// renderSet turns a setlist into track records with generated durations.
func renderSet(slot showSlot, setLabel string, songs []songProfile) []TrackRecord {
	tracks := make([]TrackRecord, 0, len(songs))
	for i, song := range songs {
		minutes := song.baseMin + getRandomFloat()*song.spreadMin

		// Long renditions chart more often than the song's baseline.
		jamProb := song.jamProb
		if minutes >= 20 {
			jamProb += 0.4
		}

		tracks = append(tracks, TrackRecord{
			Song:            song.name,
			ShowDate:        slot.date,
			Set:             setLabel,
			Position:        i + 1,
			DurationSeconds: int(minutes * secondsPerMin),
			Jamchart:        getRandomFloat() < jamProb,
			Venue:           slot.venue.venue,
			Location:        slot.venue.location,
		})
	}
	return tracks
}
