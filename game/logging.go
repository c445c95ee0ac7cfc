package game

import (
	"fmt"
	"io"
)

// logWriter is the destination for human-readable summaries.
var logWriter io.Writer

// SetLogWriter sets the summary output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted summary line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogReport prints one generation's outcome.
func LogReport(r Report) {
	Logf("=== Generation %d | ratio %.2f | temp %.1f°C | alive %d/%d ===",
		r.Generation, r.IdealRatio, r.Temperature, r.Alive, r.Total)
	for _, d := range r.Deaths {
		Logf("  ✗ %-14s died (%s) age %d fitness %.1f", d.Name, d.Cause, d.Age, d.Fitness)
	}
	for _, m := range r.Mutations {
		Logf("  ~ %-14s mutated position %d -> %c", m.Name, m.Position, m.Symbol)
	}
	if r.Extinct {
		Logf("  population extinct")
	}
}

// LogOutcome prints the result of a headless run and its hall of fame.
func LogOutcome(o Outcome) {
	status := "survived"
	if o.Extinct {
		status = "extinct"
	}
	Logf("=== Seed %d | %s after %d generations | %d alive | %d edits ===",
		o.Seed, status, o.Generations, o.Alive, o.Edits)
	if o.HallOfFame == nil || o.HallOfFame.Size() == 0 {
		return
	}
	Logf("  --- Hall of fame ---")
	for rank, e := range o.HallOfFame.Entries() {
		Logf("  %2d. %-14s age %2d peak %5.1f edits %d mutations %d (%s)",
			rank+1, e.Name, e.Age, e.PeakFitness, e.Edits, e.Mutations, e.Cause)
	}
}
