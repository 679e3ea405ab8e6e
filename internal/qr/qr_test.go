package qr

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"seatbook/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testConfig() *config.Config {
	return &config.Config{
		AppBaseURL: "https://seats.example.com/",
		QR:         config.QRConfig{Size: 128, Endpoint: "/"},
	}
}

func TestTargetURL(t *testing.T) {
	svc := NewService(testConfig())

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "", want: "https://seats.example.com/"},
		{path: "/seat-map", want: "https://seats.example.com/seat-map"},
		{path: "seat-map?row=2", want: "https://seats.example.com/seat-map?row=2"},
		{path: "https://evil.example.org/", wantErr: true},
		{path: "//evil.example.org", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := svc.TargetURL(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQRRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := NewController(NewService(testConfig()))
	engine := gin.New()
	SetupQRRoutes(engine.Group("/api/v1"), controller)
	SetupLegacyRoutes(engine, controller)

	for _, target := range []string{"/qr", "/api/v1/qr?path=/seat-map"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), pngSignature), target)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr?path=https://evil.example.org", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "qr_code.png")
	require.NoError(t, WriteFile("https://seats.example.com/", 128, filename))
	assert.FileExists(t, filename)
}
