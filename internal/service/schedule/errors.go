package schedule

import (
	"errors"
)

var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrGenreNotFound        = errors.New("genre not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrMovieOrHallNotFound  = errors.New("movie or hall not found")
	ErrGenreAlreadyLinked   = errors.New("genre already linked to movie")
	ErrInvalidMovieDuration = errors.New("movie duration must be positive")
	ErrInvalidSessionPrice  = errors.New("session price must not be negative")
)
