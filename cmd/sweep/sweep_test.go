package main

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/biogenesis/config"
	"github.com/pthm-cable/biogenesis/game"
)

func TestSweepDeterministic(t *testing.T) {
	cfg := config.Default()
	seeds := []int64{1, 2, 3, 4, 5, 6}

	serial, err := sweep(context.Background(), cfg, seeds, 40, 1)
	if err != nil {
		t.Fatal(err)
	}
	concurrent, err := sweep(context.Background(), cfg, seeds, 40, 4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range seeds {
		if serial[i].Seed != seeds[i] {
			t.Errorf("outcome %d seed = %d, want %d", i, serial[i].Seed, seeds[i])
		}
		a, b := serial[i], concurrent[i]
		a.HallOfFame, b.HallOfFame = nil, nil
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d differs between serial and parallel runs:\n%+v\n%+v", seeds[i], a, b)
		}
		if a.Generations > 40 {
			t.Errorf("seed %d ran %d generations past the cap", seeds[i], a.Generations)
		}
	}
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sweep(ctx, config.Default(), []int64{1, 2}, 10, 1); err == nil {
		t.Error("cancelled sweep returned no error")
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []game.Outcome{
		{Generations: 10, Extinct: true, Edits: 6, LongestLife: 4},
		{Generations: 20, Extinct: true, Edits: 12, LongestLife: 8},
		{Generations: 30, Extinct: false, Edits: 18, LongestLife: 30},
		{Generations: 40, Extinct: false, Edits: 24, LongestLife: 38},
	}
	s := summarize(outcomes)

	if s.Runs != 4 || s.Extinctions != 2 || s.ExtinctRate != 0.5 {
		t.Errorf("runs/extinctions/rate = %d/%d/%v", s.Runs, s.Extinctions, s.ExtinctRate)
	}
	if s.MeanGens != 25 || s.MinGens != 10 || s.MaxGens != 40 || s.MedianGens != 20 {
		t.Errorf("generations = mean %v min %v max %v median %v", s.MeanGens, s.MinGens, s.MaxGens, s.MedianGens)
	}
	if s.MeanEdits != 15 || s.MeanLongevity != 20 {
		t.Errorf("edits %v longevity %v", s.MeanEdits, s.MeanLongevity)
	}

	var buf bytes.Buffer
	s.print(&buf)
	if !strings.Contains(buf.String(), "extinct: 2 (50.0%)") {
		t.Errorf("print output = %s", buf.String())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := summarize(nil); s != (Summary{}) {
		t.Errorf("summarize(nil) = %+v", s)
	}
}
