package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkHeatwave        BookmarkType = "heatwave"
	BookmarkColdSnap        BookmarkType = "cold_snap"
	BookmarkPerfectMatch    BookmarkType = "perfect_match"
	BookmarkLongevity       BookmarkType = "longevity"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable generations.
type BookmarkDetector struct {
	tempMin, tempMax float64
	longevityAge     int

	lastAlive    int
	seenPerfect  bool
	longestAlive int
}

// NewBookmarkDetector creates a detector. Temperatures at or beyond tempMin/tempMax
// count as extremes; survivors older than longevityAge are flagged once per new record.
func NewBookmarkDetector(tempMin, tempMax float64, longevityAge int) *BookmarkDetector {
	return &BookmarkDetector{
		tempMin:      tempMin,
		tempMax:      tempMax,
		longevityAge: longevityAge,
		lastAlive:    -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
// oldest is the age of the oldest survivor.
func (bd *BookmarkDetector) Check(stats GenerationStats, oldest int) []Bookmark {
	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			Generation:  stats.Generation,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if stats.Extinct {
		add(BookmarkExtinction, "all %d organisms extinct", stats.Total)
	} else if bd.lastAlive > 0 && stats.Alive*2 <= bd.lastAlive {
		add(BookmarkPopulationCrash, "alive dropped %d -> %d", bd.lastAlive, stats.Alive)
	}

	if stats.Temperature >= bd.tempMax {
		add(BookmarkHeatwave, "temperature %.1f at upper bound", stats.Temperature)
	} else if stats.Temperature <= bd.tempMin {
		add(BookmarkColdSnap, "temperature %.1f at lower bound", stats.Temperature)
	}

	if !bd.seenPerfect && stats.FitnessMax >= 100 {
		bd.seenPerfect = true
		add(BookmarkPerfectMatch, "first organism at full fitness")
	}

	if oldest > bd.longevityAge && oldest > bd.longestAlive {
		add(BookmarkLongevity, "oldest survivor reached age %d", oldest)
	}
	if oldest > bd.longestAlive {
		bd.longestAlive = oldest
	}

	bd.lastAlive = stats.Alive
	return bookmarks
}
