package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats collects counters for a single run.
type Stats struct {
	Rows      uint64 // rows read from the source
	Results   uint64 // results reconciled with their rows
	Tolerated uint64 // evaluation errors demoted to placeholders
	started   time.Time
}

func startStats() *Stats {
	return &Stats{started: time.Now()}
}

// Elapsed returns the wall time since the run started
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.started)
}

func (s *Stats) logSummary(log zerolog.Logger) {
	log.Debug().
		Uint64("rows", s.Rows).
		Uint64("results", s.Results).
		Uint64("tolerated", s.Tolerated).
		Dur("elapsed", s.Elapsed()).
		Msg("run complete")
}
