package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/service"
	"github.com/ostapkoval/cinechain/internal/service/catalog"
	"github.com/ostapkoval/cinechain/internal/service/sales"
	"github.com/ostapkoval/cinechain/internal/service/schedule"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/cinemas", handleListCinemas(svcs))
	r.GET("/cinemas/:id", handleGetCinema(svcs))
	r.GET("/cinemas/:id/revenue", handleCinemaRevenue(svcs))

	r.GET("/movies", handleSearchMovies(svcs))
	r.GET("/movies/:id", handleGetMovie(svcs))
	r.GET("/genres", handleListGenres(svcs))

	r.GET("/sessions", handleSessionDetails(svcs))
	r.GET("/sessions/:id/free-seats", handleFreeSeats(svcs))
	r.GET("/reports/movie-stats", handleMovieStats(svcs))

	r.POST("/sessions/:id/tickets", handleSellTicket(svcs, idem))

	// Admin-API
	admin := r.Group("/admin")
	{
		admin.POST("/cinemas", handleCreateCinema(svcs))
		admin.PATCH("/cinemas/:id", handleUpdateCinema(svcs))
		admin.DELETE("/cinemas/:id", handleDeleteCinema(svcs))
		admin.POST("/cinemas/:id/halls", handleCreateHall(svcs))

		admin.PATCH("/halls/:id", handleUpdateHall(svcs))
		admin.DELETE("/halls/:id", handleDeleteHall(svcs))

		admin.POST("/movies", handleCreateMovie(svcs))
		admin.PATCH("/movies/:id", handleUpdateMovie(svcs))
		admin.DELETE("/movies/:id", handleDeleteMovie(svcs))
		admin.POST("/movies/:id/genres", handleLinkGenre(svcs))
		admin.DELETE("/movies/:id/genres/:genreID", handleUnlinkGenre(svcs))

		admin.POST("/genres", handleCreateGenre(svcs))
		admin.DELETE("/genres/:id", handleDeleteGenre(svcs))

		admin.POST("/sessions", handleCreateSession(svcs))
		admin.DELETE("/sessions/:id", handleDeleteSession(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List cinemas
// @Param    q  query  string  false  "city or address filter"
// @Success  200  {array}  domain.Cinema
// @Router   /cinemas [get]
func handleListCinemas(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cinemas, err := svcs.Catalog.ListCinemas(
			c.Request.Context(),
			strings.TrimSpace(c.Query("q")),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, cinemas)
	}
}

// @Summary  Get cinema with halls
// @Param    id  path  int  true  "Cinema ID"
// @Success  200  {object}  domain.CinemaWithHalls
// @Failure  404  {object}  ErrorResponse
// @Router   /cinemas/{id} [get]
func handleGetCinema(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		cinema, err := svcs.Catalog.GetCinemaWithHalls(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, cinema)
	}
}

// @Summary  Cinema revenue from sold tickets
// @Param    id  path  int  true  "Cinema ID"
// @Success  200  {object}  RevenueResponse
// @Router   /cinemas/{id}/revenue [get]
func handleCinemaRevenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		revenue, err := svcs.Query.CinemaRevenue(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, RevenueResponse{CinemaID: id, Revenue: revenue})
	}
}

// @Summary  Search movies by title
// @Param    title  query  string  false  "title filter"
// @Param    limit  query  int     false  "page size"
// @Param    offset query  int     false  "offset"
// @Success  200  {object}  domain.MoviePage
// @Router   /movies [get]
func handleSearchMovies(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 10)
		offset := parseIntDefault(c.Query("offset"), 0)

		page, err := svcs.Schedule.SearchMovies(
			c.Request.Context(),
			strings.TrimSpace(c.Query("title")),
			limit,
			offset,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// @Summary  Get movie with genres
// @Param    id  path  int  true  "Movie ID"
// @Success  200  {object}  domain.MovieWithGenres
// @Failure  404  {object}  ErrorResponse
// @Router   /movies/{id} [get]
func handleGetMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		movie, err := svcs.Schedule.GetMovie(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, movie)
	}
}

// @Summary  List genres
// @Success  200  {array}  domain.Genre
// @Router   /genres [get]
func handleListGenres(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		genres, err := svcs.Schedule.ListGenres(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, genres)
	}
}

// @Summary  Session schedule (denormalized)
// @Success  200  {array}  domain.SessionDetails
// @Router   /sessions [get]
func handleSessionDetails(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, err := svcs.Query.SessionDetails(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, details, "public, max-age=60", true)
	}
}

// @Summary  Free seats for a session
// @Param    id  path  int  true  "Session ID"
// @Success  200  {object}  FreeSeatsResponse
// @Router   /sessions/{id}/free-seats [get]
func handleFreeSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		free, err := svcs.Query.FreeSeatsCount(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 5s: availability goes stale fast
		writeJSONWithCache(c, http.StatusOK, FreeSeatsResponse{
			SessionID: id,
			FreeSeats: free,
		}, "public, max-age=5", true)
	}
}

// @Summary  Per-movie session counts
// @Success  200  {array}  domain.MovieStats
// @Router   /reports/movie-stats [get]
func handleMovieStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svcs.Query.MovieStats(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, stats, "public, max-age=60", true)
	}
}

// @Summary  Sell a ticket (idempotent)
// @Param    id  path  int  true  "Session ID"
// @Param    req body  SellTicketRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} SellTicketResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "session not found"
// @Failure  409 {object} ErrorResponse "seat already sold / idem in progress"
// @Failure  412 {object} ErrorResponse "session already started"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /sessions/{id}/tickets [post]
func handleSellTicket(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req SellTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemTicket(sessionID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		ticket, err := svcs.Sales.SellTicket(
			c.Request.Context(),
			sessionID,
			req.Row,
			req.SeatNumber,
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, sales.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := SellTicketResponse{
			TicketID:   ticket.ID,
			SessionID:  ticket.SessionID,
			Row:        ticket.Row,
			SeatNumber: ticket.SeatNumber,
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Create cinema
// @Param    req body  CreateCinemaRequest true "payload"
// @Success  201 {object} CreateCinemaResponse
// @Router   /admin/cinemas [post]
func handleCreateCinema(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCinemaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateCinema(
			c.Request.Context(),
			req.City,
			req.Address,
			req.Email,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateCinemaResponse{CinemaID: id})
	}
}

// @Summary  Update cinema (partial: blank keeps prior value)
// @Param    id  path  int  true  "Cinema ID"
// @Param    req body  UpdateCinemaRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/cinemas/{id} [patch]
func handleUpdateCinema(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateCinemaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Catalog.UpdateCinema(
			c.Request.Context(),
			id,
			req.City,
			req.Address,
			req.Email,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete cinema (cascades halls, sessions, tickets)
// @Param    id  path  int  true  "Cinema ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/cinemas/{id} [delete]
func handleDeleteCinema(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Catalog.DeleteCinema(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create hall under a cinema
// @Param    id  path  int  true  "Cinema ID"
// @Param    req body  CreateHallRequest true "payload"
// @Success  201 {object} CreateHallResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/cinemas/{id}/halls [post]
func handleCreateHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cinemaID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateHallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateHall(
			c.Request.Context(),
			cinemaID,
			req.Name,
			req.SeatsCount,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateHallResponse{HallID: id})
	}
}

// @Summary  Update hall (partial; seat count change is guarded)
// @Param    id  path  int  true  "Hall ID"
// @Param    req body  UpdateHallRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  412 {object} ErrorResponse "hall has future sessions"
// @Router   /admin/halls/{id} [patch]
func handleUpdateHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateHallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Catalog.UpdateHall(
			c.Request.Context(),
			id,
			req.Name,
			req.SeatsCount,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete hall (cascades sessions, tickets)
// @Param    id  path  int  true  "Hall ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/halls/{id} [delete]
func handleDeleteHall(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Catalog.DeleteHall(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create movie
// @Param    req body  CreateMovieRequest true "payload"
// @Success  201 {object} CreateMovieResponse
// @Failure  422 {object} ErrorResponse "duration must be positive"
// @Router   /admin/movies [post]
func handleCreateMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		releaseDate, err := parseDate(req.ReleaseDate)
		if err != nil {
			badRequest(c, "invalid release_date (YYYY-MM-DD)")
			return
		}
		id, err := svcs.Schedule.CreateMovie(
			c.Request.Context(),
			req.Title,
			req.Duration,
			req.AgeRestriction,
			releaseDate,
			req.Description,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateMovieResponse{MovieID: id})
	}
}

// @Summary  Update movie (partial)
// @Param    id  path  int  true  "Movie ID"
// @Param    req body  UpdateMovieRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  422 {object} ErrorResponse
// @Router   /admin/movies/{id} [patch]
func handleUpdateMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var releaseDate *time.Time
		if req.ReleaseDate != "" {
			d, err := parseDate(req.ReleaseDate)
			if err != nil {
				badRequest(c, "invalid release_date (YYYY-MM-DD)")
				return
			}
			releaseDate = &d
		}
		if err := svcs.Schedule.UpdateMovie(
			c.Request.Context(),
			id,
			req.Title,
			req.Duration,
			req.AgeRestriction,
			releaseDate,
			req.Description,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete movie (cascades sessions, tickets, genre links)
// @Param    id  path  int  true  "Movie ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/movies/{id} [delete]
func handleDeleteMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Schedule.DeleteMovie(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Link genre to movie
// @Param    id  path  int  true  "Movie ID"
// @Param    req body  LinkGenreRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already linked"
// @Router   /admin/movies/{id}/genres [post]
func handleLinkGenre(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req LinkGenreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Schedule.LinkGenre(
			c.Request.Context(),
			movieID,
			req.GenreID,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Unlink genre from movie
// @Param    id       path  int  true  "Movie ID"
// @Param    genreID  path  int  true  "Genre ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/movies/{id}/genres/{genreID} [delete]
func handleUnlinkGenre(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		genreID, ok := parseInt64Param(c, "genreID")
		if !ok {
			return
		}
		if err := svcs.Schedule.UnlinkGenre(
			c.Request.Context(),
			movieID,
			genreID,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create genre
// @Param    req body  CreateGenreRequest true "payload"
// @Success  201 {object} CreateGenreResponse
// @Router   /admin/genres [post]
func handleCreateGenre(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGenreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Schedule.CreateGenre(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateGenreResponse{GenreID: id})
	}
}

// @Summary  Delete genre
// @Param    id  path  int  true  "Genre ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/genres/{id} [delete]
func handleDeleteGenre(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Schedule.DeleteGenre(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create session
// @Param    req body  CreateSessionRequest true "payload"
// @Success  201 {object} CreateSessionResponse
// @Failure  404 {object} ErrorResponse "movie or hall not found"
// @Failure  422 {object} ErrorResponse "price must not be negative"
// @Router   /admin/sessions [post]
func handleCreateSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		startTime, err := parseRFC3339(req.StartTime)
		if err != nil {
			badRequest(c, "invalid start_time (RFC3339)")
			return
		}
		id, err := svcs.Schedule.CreateSession(
			c.Request.Context(),
			req.MovieID,
			req.HallID,
			startTime,
			req.Price,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateSessionResponse{SessionID: id})
	}
}

// @Summary  Delete session (cascades tickets)
// @Param    id  path  int  true  "Session ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/sessions/{id} [delete]
func handleDeleteSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Schedule.DeleteSession(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// catalog service
	case errors.Is(err, catalog.ErrCinemaNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "cinema not found"})
	case errors.Is(err, catalog.ErrHallNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "hall not found"})
	case errors.Is(err, catalog.ErrHallHasFutureSessions):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "hall has future sessions"})
	// schedule service
	case errors.Is(err, schedule.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
	case errors.Is(err, schedule.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "genre not found"})
	case errors.Is(err, schedule.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, schedule.ErrMovieOrHallNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie or hall not found"})
	case errors.Is(err, schedule.ErrGenreAlreadyLinked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "genre already linked"})
	case errors.Is(err, schedule.ErrInvalidMovieDuration):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "movie duration must be positive"})
	case errors.Is(err, schedule.ErrInvalidSessionPrice):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "session price must not be negative"})
	// sales service
	case errors.Is(err, sales.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, sales.ErrSeatTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat already sold"})
	case errors.Is(err, sales.ErrSessionStarted):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "session already started"})
	case errors.Is(err, sales.ErrInvalidSeat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "row and seat number must be positive"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
