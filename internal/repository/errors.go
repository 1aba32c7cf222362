package repository

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrCheckViolation        = errors.New("check constraint violation")
	ErrSessionStarted        = errors.New("session already started")
	ErrHallHasFutureSessions = errors.New("hall has future sessions")
)
