package pictor

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a missing artwork row and an artwork without a
// stored origin image. Callers cannot tell the two apart.
var ErrNotFound = errors.New("no image for artwork")

// StageError marks an upstream or processing failure and records which
// pipeline stage produced it, so the handler can log it with context and map
// it to a 502 without string matching.
type StageError struct {
	Stage string // "resolve", "fetch" or "transform"
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageOf(err error) string {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return "unknown"
}
