package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/handpong/config"
)

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// csvFile is an output CSV that writes its header with the first batch.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func writeRows[T any](c *csvFile, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if !c.headerWritten {
		if err := gocsv.Marshal(rows, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, c.f)
}

// OutputManager writes one session's CSV logs and config snapshot under
// <dir>/<session>.
type OutputManager struct {
	dir       string
	session   string
	points    *csvFile
	stats     *csvFile
	perf      *csvFile
	bookmarks *csvFile
}

// NewOutputManager creates the session directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir, session string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	sessionDir := filepath.Join(dir, session)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: sessionDir, session: session}
	files := []struct {
		name string
		dst  **csvFile
	}{
		{"points.csv", &om.points},
		{"stats.csv", &om.stats},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	}
	for _, file := range files {
		f, err := os.Create(filepath.Join(sessionDir, file.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", file.name, err)
		}
		*file.dst = &csvFile{f: f}
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePoints appends rows to points.csv.
func (om *OutputManager) WritePoints(points []PointRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.points, points); err != nil {
		return fmt.Errorf("writing points: %w", err)
	}
	return nil
}

// WriteStats appends a window to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.stats, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf appends a performance row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perf, []PerfStatsCSV{stats.ToCSV(om.session, windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmarks appends rows to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.bookmarks, bookmarks); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}

// Dir returns the session output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.points, om.stats, om.perf, om.bookmarks} {
		if c == nil || c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
