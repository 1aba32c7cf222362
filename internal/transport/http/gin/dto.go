package httpgin

import (
	"time"
)

type CreateCinemaRequest struct {
	City    string `json:"city"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// UpdateCinemaRequest carries a partial update: a blank field means "leave
// unchanged". There is no way to clear a field to empty.
type UpdateCinemaRequest struct {
	City    string `json:"city"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type CreateHallRequest struct {
	Name       string `json:"name" binding:"required"`
	SeatsCount int    `json:"seats_count" binding:"required"`
}

type UpdateHallRequest struct {
	Name       string `json:"name"`
	SeatsCount *int   `json:"seats_count"`
}

type CreateMovieRequest struct {
	Title          string `json:"title" binding:"required"`
	Duration       int    `json:"duration" binding:"required"`
	AgeRestriction int    `json:"age_restriction"`
	ReleaseDate    string `json:"release_date" binding:"required"`
	Description    string `json:"description"`
}

type UpdateMovieRequest struct {
	Title          string `json:"title"`
	Duration       *int   `json:"duration"`
	AgeRestriction *int   `json:"age_restriction"`
	ReleaseDate    string `json:"release_date"`
	Description    string `json:"description"`
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

type LinkGenreRequest struct {
	GenreID int64 `json:"genre_id" binding:"required"`
}

type CreateSessionRequest struct {
	MovieID   int64   `json:"movie_id" binding:"required"`
	HallID    int64   `json:"hall_id" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	Price     float64 `json:"price"`
}

type SellTicketRequest struct {
	Row        int `json:"row" binding:"required,gt=0"`
	SeatNumber int `json:"seat_number" binding:"required,gt=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateCinemaResponse struct {
	CinemaID int64 `json:"cinema_id"`
}

type CreateHallResponse struct {
	HallID int64 `json:"hall_id"`
}

type CreateMovieResponse struct {
	MovieID int64 `json:"movie_id"`
}

type CreateGenreResponse struct {
	GenreID int64 `json:"genre_id"`
}

type CreateSessionResponse struct {
	SessionID int64 `json:"session_id"`
}

type SellTicketResponse struct {
	TicketID   int64 `json:"ticket_id"`
	SessionID  int64 `json:"session_id"`
	Row        int   `json:"row"`
	SeatNumber int   `json:"seat_number"`
}

type FreeSeatsResponse struct {
	SessionID int64 `json:"session_id"`
	FreeSeats int   `json:"free_seats"`
}

type RevenueResponse struct {
	CinemaID int64   `json:"cinema_id"`
	Revenue  float64 `json:"revenue"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseDate accepts a bare calendar date for movie release dates.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
