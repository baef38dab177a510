// Package logging configures structured logging for Tabr. Logs always go to
// a side channel (normally stderr) so they can never interleave with the
// output row stream.
package logging

import (
	"io"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level, stamped with a fresh
// run identifier. Unknown level names fall back to warn, which keeps normal
// runs silent.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	logger := zerolog.New(w).Level(lvl).With().Timestamp()
	if id, err := uuid.NewV4(); err == nil {
		logger = logger.Str("run_id", id.String())
	}
	return logger.Logger()
}

// ForWorker derives a worker-scoped logger carrying a worker identifier.
func ForWorker(parent zerolog.Logger, worker int) zerolog.Logger {
	logger := parent.With().Int("worker", worker)
	if id, err := uuid.NewV4(); err == nil {
		logger = logger.Str("worker_id", id.String())
	}
	return logger.Logger()
}
