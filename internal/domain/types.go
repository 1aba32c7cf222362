package domain

import "time"

type Cinema struct {
	ID      int64  `json:"id"`
	City    string `json:"city"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type CinemaWithHalls struct {
	Cinema
	Halls []Hall `json:"halls"`
}

type Hall struct {
	ID         int64  `json:"id"`
	CinemaID   int64  `json:"cinema_id"`
	Name       string `json:"name"`
	SeatsCount int    `json:"seats_count"`
}

type Movie struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Duration       int       `json:"duration"`
	AgeRestriction int       `json:"age_restriction"`
	ReleaseDate    time.Time `json:"release_date"`
	Description    string    `json:"description"`
}

type MovieWithGenres struct {
	Movie
	Genres []Genre `json:"genres"`
}

// MoviePage is one page of a title search, together with the total number
// of matches so callers can compute page counts.
type MoviePage struct {
	Movies []Movie `json:"movies"`
	Total  int64   `json:"total"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Session struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	HallID    int64     `json:"hall_id"`
	StartTime time.Time `json:"start_time"`
	Price     float64   `json:"price"`
}

// Ticket is the sale record: a row exists with IsSold set the moment the
// sale commits, and is never updated afterwards.
type Ticket struct {
	ID         int64 `json:"id"`
	SessionID  int64 `json:"session_id"`
	Row        int   `json:"row"`
	SeatNumber int   `json:"seat_number"`
	IsSold     bool  `json:"is_sold"`
}

// SessionDetails is the denormalized schedule projection joined across
// sessions, movies and halls.
type SessionDetails struct {
	SessionID  int64     `json:"session_id"`
	MovieTitle string    `json:"movie_title"`
	HallName   string    `json:"hall_name"`
	StartTime  time.Time `json:"start_time"`
	Price      float64   `json:"price"`
}

// MovieStats is the per-movie session count, including movies that have
// no sessions scheduled yet.
type MovieStats struct {
	MovieID      int64  `json:"movie_id"`
	Title        string `json:"title"`
	SessionCount int64  `json:"session_count"`
}
