package input

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []Sample{
		{At: 0, Y: 0.25, Present: true},
		{At: 33 * time.Millisecond, Y: 0, Present: false},
		{At: 66 * time.Millisecond, Y: 0.75, Present: true},
	}
	for _, s := range want {
		if err := rec.Record(s); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Count() != 3 {
		t.Errorf("count = %d, want 3", rec.Count())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSamples(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRecorderContinuesAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatal(err)
	}

	// Two source runs, each counting from zero
	runs := [][]time.Duration{
		{0, 10 * time.Millisecond, 20 * time.Millisecond},
		{0, 10 * time.Millisecond},
	}
	for _, run := range runs {
		for _, at := range run {
			if err := rec.Record(Sample{At: at, Y: 0.5, Present: true}); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSamples(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{0, 10, 20, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("loaded %d samples, want %d", len(got), len(want))
	}
	for i, ms := range want {
		if got[i].At != ms*time.Millisecond {
			t.Errorf("sample %d at %v, want %v", i, got[i].At, ms*time.Millisecond)
		}
	}

	// Replay sees every sample once, in order
	replay := NewReplay(got, 1)
	if n := len(replay.Until(30 * time.Millisecond)); n != len(want) {
		t.Errorf("replay returned %d samples, want %d", n, len(want))
	}
}

func TestRecorderDisabled(t *testing.T) {
	rec, err := NewRecorder("")
	if err != nil || rec != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v", rec, err)
	}
	if err := rec.Record(Sample{}); err != nil {
		t.Error(err)
	}
	in := make(chan Sample)
	if rec.Tee(in) != (<-chan Sample)(in) {
		t.Error("nil recorder should pass the channel through")
	}
}

func TestRecorderTee(t *testing.T) {
	rec, err := NewRecorder(filepath.Join(t.TempDir(), "tee.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	in := make(chan Sample, 2)
	in <- Sample{Y: 0.1, Present: true}
	in <- Sample{Y: 0.2, Present: true}
	close(in)

	n := 0
	for range rec.Tee(in) {
		n++
	}
	if n != 2 || rec.Count() != 2 {
		t.Errorf("passed %d, recorded %d; want 2 and 2", n, rec.Count())
	}
}

func TestLoadSamplesMissing(t *testing.T) {
	if _, err := LoadSamples(filepath.Join(t.TempDir(), "none.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReplayNext(t *testing.T) {
	r := NewReplay([]Sample{{Y: 0.1}, {Y: 0.2}}, 1)
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
	}
	if _, err := r.Next(); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Next() after end = %v, want ErrSourceClosed", err)
	}
	if _, err := r.Start(context.Background()); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Start() on exhausted replay = %v, want ErrSourceClosed", err)
	}
}

func TestReplayStart(t *testing.T) {
	samples := []Sample{
		{At: 0, Y: 0.1, Present: true},
		{At: 10 * time.Millisecond, Y: 0.2, Present: true},
		{At: 20 * time.Millisecond, Y: 0.3, Present: true},
	}
	r := NewReplay(samples, 10)

	ch, err := r.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var got []Sample
	for s := range ch {
		got = append(got, s)
	}
	if len(got) != 3 || got[2].Y != 0.3 {
		t.Errorf("replayed %+v", got)
	}
}

func TestReplayUntil(t *testing.T) {
	samples := []Sample{
		{At: 0, Y: 0.1, Present: true},
		{At: 10 * time.Millisecond, Y: 0.2, Present: true},
		{At: 20 * time.Millisecond, Y: 0.3, Present: true},
	}
	r := NewReplay(samples, 2)

	tests := []struct {
		at   time.Duration
		want int
	}{
		{5 * time.Millisecond, 2},
		{5 * time.Millisecond, 0},
		{time.Second, 1},
	}
	for _, tt := range tests {
		if got := r.Until(tt.at); len(got) != tt.want {
			t.Errorf("Until(%v) returned %d samples, want %d", tt.at, len(got), tt.want)
		}
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}
