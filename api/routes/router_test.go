package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seatbook/internal/bookings"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, store bookings.RecordStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIVersion:   "v1",
		APIPrefix:    "/api",
		AppBaseURL:   "https://seats.example.com",
		StoreBackend: config.StoreBackendMemory,
		Venue:        config.VenueConfig{SeatCount: 200},
		JWT:          config.JWTConfig{Secret: "test-secret", AccessExpiresIn: time.Minute},
		QR:           config.QRConfig{Size: 128, Endpoint: "/"},
	}

	engine := gin.New()
	NewRouter(cfg, &database.DB{}, store, nil).SetupRoutes(engine)
	return engine
}

func do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitThenReadBookedSeats(t *testing.T) {
	store := bookings.NewMemoryStore(bookings.Record{Seats: "1, 2"})
	engine := newTestEngine(t, store)

	w := do(engine, http.MethodPost, "/submit",
		`{"user_code":"U7","name":"Asha","mobile":"+91 99999-99999","seats":"Seat: 4, Seat: 12"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"ok":true`)

	w = do(engine, http.MethodGet, "/booked-seats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"booked":[1,2,4,12]}`, w.Body.String())

	w = do(engine, http.MethodGet, "/api/v1/seats/map", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"double_booked":[]`)
}

func TestSubmitRejectedGroupSavesNothing(t *testing.T) {
	store := bookings.NewMemoryStore()
	engine := newTestEngine(t, store)

	w := do(engine, http.MethodPost, "/api/v1/bookings",
		`{"user_code":"U1","name":"A, B","mobile":"1111111111, 2222222222","seats":[5]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, store.Records())
}

func TestHealthRoutes(t *testing.T) {
	engine := newTestEngine(t, bookings.NewMemoryStore())

	for _, target := range []string{"/health", "/ping", "/status"} {
		w := do(engine, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}
