package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNoCurrentRun    = errors.New("no current run. Create one with 'leadpilot run new'")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
