package catalog

import (
	"errors"
)

var (
	ErrCinemaNotFound        = errors.New("cinema not found")
	ErrHallNotFound          = errors.New("hall not found")
	ErrHallHasFutureSessions = errors.New("hall has future sessions")
)
