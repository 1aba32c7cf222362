package httpgin

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapkoval/cinechain/internal/service/catalog"
	"github.com/ostapkoval/cinechain/internal/service/sales"
	"github.com/ostapkoval/cinechain/internal/service/schedule"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestRespondErrMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "cinema not found", err: catalog.ErrCinemaNotFound, wantStatus: http.StatusNotFound},
		{name: "hall not found", err: catalog.ErrHallNotFound, wantStatus: http.StatusNotFound},
		{name: "movie not found", err: schedule.ErrMovieNotFound, wantStatus: http.StatusNotFound},
		{name: "genre not found", err: schedule.ErrGenreNotFound, wantStatus: http.StatusNotFound},
		{name: "session not found", err: schedule.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "movie or hall not found", err: schedule.ErrMovieOrHallNotFound, wantStatus: http.StatusNotFound},
		{name: "sale for unknown session", err: sales.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "seat taken", err: sales.ErrSeatTaken, wantStatus: http.StatusConflict},
		{name: "genre already linked", err: schedule.ErrGenreAlreadyLinked, wantStatus: http.StatusConflict},
		{name: "invalid duration", err: schedule.ErrInvalidMovieDuration, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid price", err: schedule.ErrInvalidSessionPrice, wantStatus: http.StatusUnprocessableEntity},
		{name: "hall has future sessions", err: catalog.ErrHallHasFutureSessions, wantStatus: http.StatusPreconditionFailed},
		{name: "session started", err: sales.ErrSessionStarted, wantStatus: http.StatusPreconditionFailed},
		{name: "invalid seat", err: sales.ErrInvalidSeat, wantStatus: http.StatusBadRequest},
		{name: "unknown error hides details", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := testContext(t)

			// Errors arrive wrapped with the operation name.
			respondErr(c, fmt.Errorf("service.test:%w", tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}

func TestWriteJSONWithCache(t *testing.T) {
	type payload struct {
		Value int `json:"value"`
	}

	c, rec := testContext(t)
	writeJSONWithCache(c, http.StatusOK, payload{Value: 42}, "public, max-age=60", true)

	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.True(t, etag[:2] == "W/", "expected a weak ETag, got %q", etag)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"value":42}`, rec.Body.String())

	// Same payload, matching If-None-Match: 304 with an empty body.
	c2, rec2 := testContext(t)
	c2.Request.Header.Set("If-None-Match", etag)
	writeJSONWithCache(c2, http.StatusOK, payload{Value: 42}, "public, max-age=60", true)
	// gin buffers a body-less Status() until the engine flushes it; do that here.
	c2.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNotModified, rec2.Code)
	assert.Empty(t, rec2.Body.String())

	// Changed payload: fresh ETag, full body again.
	c3, rec3 := testContext(t)
	c3.Request.Header.Set("If-None-Match", etag)
	writeJSONWithCache(c3, http.StatusOK, payload{Value: 43}, "public, max-age=60", true)

	assert.Equal(t, http.StatusOK, rec3.Code)
	assert.NotEqual(t, etag, rec3.Header().Get("ETag"))
}

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		name string
		in   string
		def  int
		want int
	}{
		{name: "empty falls back", in: "", def: 10, want: 10},
		{name: "garbage falls back", in: "abc", def: 10, want: 10},
		{name: "valid number parsed", in: "25", def: 10, want: 25},
		{name: "negative number parsed", in: "-1", def: 10, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIntDefault(tt.in, tt.def))
		})
	}
}

func TestParseInt64Param(t *testing.T) {
	c, _ := testContext(t)
	c.Params = gin.Params{{Key: "id", Value: "10042"}}

	id, ok := parseInt64Param(c, "id")
	require.True(t, ok)
	assert.EqualValues(t, 10042, id)

	c2, rec2 := testContext(t)
	c2.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok = parseInt64Param(c2, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("1972-03-20")
	require.NoError(t, err)
	assert.Equal(t, 1972, d.Year())

	_, err = parseDate("20.03.1972")
	assert.Error(t, err)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	// No incoming header: one is generated.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Incoming header is echoed back untouched.
	rec2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(rec2, req)
	assert.Equal(t, "req-123", rec2.Header().Get("X-Request-ID"))
}
