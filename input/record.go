package input

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// sampleRow is the CSV form of a Sample.
type sampleRow struct {
	TMs     int64   `csv:"t_ms"`
	YNorm   float64 `csv:"y_norm"`
	Present bool    `csv:"present"`
}

func toRow(s Sample) sampleRow {
	return sampleRow{TMs: s.At.Milliseconds(), YNorm: s.Y, Present: s.Present}
}

func (r sampleRow) sample() Sample {
	return Sample{At: time.Duration(r.TMs) * time.Millisecond, Y: r.YNorm, Present: r.Present}
}

// Recorder appends samples to a CSV file.
type Recorder struct {
	f             *os.File
	headerWritten bool
	count         int

	// Restarted sources count from zero again; offset keeps the log's
	// timestamps non-decreasing across runs.
	offset time.Duration
	last   time.Duration
}

// NewRecorder creates (or truncates) the file at path.
// Returns nil if path is empty (recording disabled).
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating sample log: %w", err)
	}
	return &Recorder{f: f}, nil
}

// Record appends one sample. A sample stamped earlier than the previous one
// starts a new run, which is logged as continuing from the previous one.
func (r *Recorder) Record(s Sample) error {
	if r == nil {
		return nil
	}
	if s.At+r.offset < r.last {
		r.offset = r.last - s.At
	}
	s.At += r.offset
	r.last = s.At
	rows := []sampleRow{toRow(s)}
	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(rows, r.f)
		r.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, r.f)
	}
	if err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	r.count++
	return nil
}

// Tee records every sample from in while passing it through.
// Write errors stop recording but not the stream.
func (r *Recorder) Tee(in <-chan Sample) <-chan Sample {
	if r == nil {
		return in
	}
	out := make(chan Sample, 1)
	go func() {
		defer close(out)
		recording := true
		for s := range in {
			if recording {
				if err := r.Record(s); err != nil {
					recording = false
				}
			}
			out <- s
		}
	}()
	return out
}

// Count returns the number of samples written.
func (r *Recorder) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Close closes the underlying file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.f.Close()
}

// LoadSamples reads a sample log written by Recorder.
func LoadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample log: %w", err)
	}
	defer f.Close()

	var rows []sampleRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing sample log: %w", err)
	}
	samples := make([]Sample, len(rows))
	for i, row := range rows {
		samples[i] = row.sample()
	}
	return samples, nil
}

// Replay plays back recorded samples.
type Replay struct {
	samples []Sample
	pos     int
	speed   float64
}

// NewReplay creates a replay. speed scales playback time (1 = real time).
func NewReplay(samples []Sample, speed float64) *Replay {
	if speed <= 0 {
		speed = 1
	}
	return &Replay{samples: samples, speed: speed}
}

// Next returns the next sample, or ErrSourceClosed at the end.
func (r *Replay) Next() (Sample, error) {
	if r.pos >= len(r.samples) {
		return Sample{}, ErrSourceClosed
	}
	s := r.samples[r.pos]
	r.pos++
	return s, nil
}

// Until returns the samples recorded at or before at, scaled by the
// playback speed, advancing the replay past them.
func (r *Replay) Until(at time.Duration) []Sample {
	var out []Sample
	for r.pos < len(r.samples) {
		s := r.samples[r.pos]
		if time.Duration(float64(s.At)/r.speed) > at {
			break
		}
		out = append(out, s)
		r.pos++
	}
	return out
}

// Remaining returns the number of samples not yet played.
func (r *Replay) Remaining() int {
	return len(r.samples) - r.pos
}

// Start emits the remaining samples at their recorded offsets and closes
// the channel when they run out or ctx is done.
func (r *Replay) Start(ctx context.Context) (<-chan Sample, error) {
	if r.Remaining() == 0 {
		return nil, ErrSourceClosed
	}
	ch := make(chan Sample, 1)
	go func() {
		defer close(ch)
		start := time.Now()
		base := r.samples[r.pos].At
		for {
			s, err := r.Next()
			if err != nil {
				return
			}
			due := time.Duration(float64(s.At-base) / r.speed)
			if wait := due - time.Since(start); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
			select {
			case ch <- s:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
