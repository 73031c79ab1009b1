package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start or stopped with an error.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("httpserver: graceful shutdown failed")
	// ErrAlreadyRunning is joined with ErrStart when Run is called twice.
	ErrAlreadyRunning = errors.New("httpserver: already running")
)
