package polycube

import "errors"

var (
	ErrTooManyCubes  = errors.New("shape size exceeds the supported maximum")
	ErrGridCapacity  = errors.New("rooted shape grid capacity exceeded")
	ErrNoWorkers     = errors.New("worker count must be at least 1")
	ErrInvalidCutoff = errors.New("hand-off cutoff must be at least 2")
	ErrPoolClosed    = errors.New("pool has been shut down")
)
