package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thunderbuddy/api/handlers"
	"thunderbuddy/services"
)

// newWeatherRouter вешает /weather поверх подставного Weatherbit
func newWeatherRouter(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	weatherService := services.NewWeatherService("test-key", srv.URL, 2*time.Second)
	router := gin.New()
	router.GET("/weather", handlers.NewWeatherHandler(weatherService).Current)
	return router
}

func TestWeatherPassesThroughUpstreamPayload(t *testing.T) {
	var gotQuery map[string]string
	router := newWeatherRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"postal_code": r.URL.Query().Get("postal_code"),
			"country":     r.URL.Query().Get("country"),
			"units":       r.URL.Query().Get("units"),
			"key":         r.URL.Query().Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1,"data":[{"city_name":"Seattle","temp":55.4}]}`))
	})

	w := doJSON(t, router, http.MethodGet, "/weather?zip=98101&country=US", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])

	assert.Equal(t, "98101", gotQuery["postal_code"])
	assert.Equal(t, "US", gotQuery["country"])
	assert.Equal(t, "I", gotQuery["units"])
	assert.Equal(t, "test-key", gotQuery["key"])
}

// Без параметров подставляются дефолтные zip и страна
func TestWeatherDefaults(t *testing.T) {
	var gotQuery map[string]string
	router := newWeatherRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"postal_code": r.URL.Query().Get("postal_code"),
			"country":     r.URL.Query().Get("country"),
		}
		w.Write([]byte(`{}`))
	})

	w := doJSON(t, router, http.MethodGet, "/weather", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "30152", gotQuery["postal_code"])
	assert.Equal(t, "US", gotQuery["country"])
}

func TestWeatherEmptyZip(t *testing.T) {
	router := newWeatherRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})

	w := doJSON(t, router, http.MethodGet, "/weather?zip=", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ZIP code is required", decodeBody(t, w)["error"])
}

// Статус ошибки Weatherbit пробрасывается клиенту без изменений
func TestWeatherUpstreamStatusPassthrough(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusServiceUnavailable} {
		router := newWeatherRouter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		w := doJSON(t, router, http.MethodGet, "/weather?zip=30152", "", nil)
		assert.Equal(t, status, w.Code)
		assert.Equal(t, "Failed to fetch weather data", decodeBody(t, w)["error"])
	}
}

func TestWeatherBadUpstreamPayload(t *testing.T) {
	router := newWeatherRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	w := doJSON(t, router, http.MethodGet, "/weather", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Invalid response format", decodeBody(t, w)["error"])
}

func TestWeatherUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gin.SetMode(gin.TestMode)
	weatherService := services.NewWeatherService("test-key", url, time.Second)
	router := gin.New()
	router.GET("/weather", handlers.NewWeatherHandler(weatherService).Current)

	w := doJSON(t, router, http.MethodGet, "/weather", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "API request failed", decodeBody(t, w)["error"])
}
