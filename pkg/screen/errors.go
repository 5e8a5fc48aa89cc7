package screen

import "errors"

var (
	// ErrSaveInFlight indicates a save was attempted while one was already
	// running.
	ErrSaveInFlight = errors.New("screen: save already in flight")

	// ErrFormNotLoaded indicates a save was attempted before the editor
	// finished loading.
	ErrFormNotLoaded = errors.New("screen: form not loaded")
)
