package session

import "errors"

var (
	// ErrInvalidToken indicates SetToken was called with an empty token.
	ErrInvalidToken = errors.New("session: token cannot be empty")

	// ErrStorageUnavailable indicates the backing storage could not be
	// read or written.
	ErrStorageUnavailable = errors.New("session: storage unavailable")
)
