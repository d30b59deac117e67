package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkRallyRecord        BookmarkType = "rally_record"
	BookmarkSpeedRecord        BookmarkType = "speed_record"
	BookmarkReturnBreakthrough BookmarkType = "return_breakthrough"
	BookmarkSlump              BookmarkType = "slump"
)

// Bookmark marks a window worth looking at when reviewing a session.
type Bookmark struct {
	Session     string       `csv:"session"`
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"session", b.Session,
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector compares each window against recent history and
// session records.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	bestRally int
	bestSpeed float64
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkRallyRecord,
		bd.checkSpeedRecord,
		bd.checkReturnBreakthrough,
		bd.checkSlump,
	} {
		if b := check(stats); b != nil {
			b.Session = stats.Session
			bookmarks = append(bookmarks, *b)
		}
	}
	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// avgReturnRate averages the return rate of history windows that saw play
// on the human side.
func (bd *BookmarkDetector) avgReturnRate() (float64, bool) {
	var rates []float64
	for _, h := range bd.getHistory() {
		if h.HitsLeft+h.PointsRight > 0 {
			rates = append(rates, h.ReturnRate)
		}
	}
	if len(rates) < 3 {
		return 0, false
	}
	return stat.Mean(rates, nil), true
}

func (bd *BookmarkDetector) checkRallyRecord(stats WindowStats) *Bookmark {
	if stats.RallyMax <= bd.bestRally {
		return nil
	}
	prev := bd.bestRally
	bd.bestRally = stats.RallyMax
	if stats.RallyMax < 5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRallyRecord,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Longest rally %d hits (previous best %d)", stats.RallyMax, prev),
	}
}

func (bd *BookmarkDetector) checkSpeedRecord(stats WindowStats) *Bookmark {
	prev := bd.bestSpeed
	if stats.MaxBallSpeed <= prev {
		return nil
	}
	bd.bestSpeed = stats.MaxBallSpeed
	// First window only sets the baseline
	if prev == 0 || stats.MaxBallSpeed < prev*1.1 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSpeedRecord,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Ball reached %.0f units/s (previous best %.0f)", stats.MaxBallSpeed, prev),
	}
}

func (bd *BookmarkDetector) checkReturnBreakthrough(stats WindowStats) *Bookmark {
	avg, ok := bd.avgReturnRate()
	if !ok || avg == 0 || stats.HitsLeft < 5 {
		return nil
	}
	if stats.ReturnRate > avg*1.5 && stats.ReturnRate >= 0.5 {
		return &Bookmark{
			Type:        BookmarkReturnBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Return rate %.2f is %.1fx average (%.2f)", stats.ReturnRate, stats.ReturnRate/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSlump(stats WindowStats) *Bookmark {
	avg, ok := bd.avgReturnRate()
	if !ok || stats.PointsRight < 3 {
		return nil
	}
	if stats.ReturnRate < avg*0.5 {
		return &Bookmark{
			Type:        BookmarkSlump,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Return rate fell to %.2f from average %.2f", stats.ReturnRate, avg),
		}
	}
	return nil
}
