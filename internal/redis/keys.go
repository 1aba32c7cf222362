package redisx

import "fmt"

const ns = "cinechain:v1"

func KeySessionDetails() string {
	return ns + ":schedule:details"
}

func KeyMovieStats() string {
	return ns + ":movies:stats"
}

func KeyFreeSeats(sessionID int64) string {
	return fmt.Sprintf("%s:session:%d:freeseats", ns, sessionID)
}

func KeyCinemaRevenue(cinemaID int64) string {
	return fmt.Sprintf("%s:cinema:%d:revenue", ns, cinemaID)
}

// KeyRateLimit is a limiter prefix; the limiter appends the caller key.
func KeyRateLimit(scope string) string {
	return fmt.Sprintf("%s:rl:%s", ns, scope)
}

func ChannelScheduleChanged() string {
	return ns + ":schedule:changed"
}
