package sales

import (
	"errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSeatTaken       = errors.New("seat already sold for this session")
	ErrSessionStarted  = errors.New("session has already started")
	ErrInvalidSeat     = errors.New("row and seat number must be positive")
	ErrRateLimited     = errors.New("rate limited")
)
