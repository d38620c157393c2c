package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/middleway/middleway/internal/app/controllers"
	"github.com/middleway/middleway/internal/middleware"
	"github.com/middleway/middleway/internal/pkg/auth"
	"github.com/middleway/middleway/internal/pkg/geocode"
)

func newTestRouter(geocoder *geocode.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})

	// Service-less controllers are fine here: the cases below never reach
	// a handler that would touch one.
	SetupRouter(router,
		controllers.NewAuthController(nil, zerolog.Nop()),
		controllers.NewUserController(nil, jwtService, zerolog.Nop()),
		controllers.NewMeetupController(nil, zerolog.Nop()),
		controllers.NewMapController(geocoder, zerolog.Nop()),
		middleware.NewAuthMiddleware(jwtService),
	)

	return router
}

func TestMapSearchNeedsNoToken(t *testing.T) {
	const payload = `[{"display_name":"Library, Campus"}]`
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer provider.Close()

	router := newTestRouter(geocode.NewClient(geocode.Config{BaseURL: provider.URL, UserAgent: "TestApp/1.0"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/map/search?q=library", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, payload, w.Body.String())
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(geocode.NewClient(geocode.Config{BaseURL: "http://unused"}))

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodGet, "/api/users/all"},
		{http.MethodGet, "/api/meetups"},
		{http.MethodGet, "/api/meetups/moderator"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(route.method, route.path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter(geocode.NewClient(geocode.Config{BaseURL: "http://unused"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
