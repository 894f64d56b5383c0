package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"thunderbuddy/api/handlers"
	"thunderbuddy/api/routes"
	"thunderbuddy/db"
	"thunderbuddy/services"
	"thunderbuddy/store"
)

const testPassword = "secret123"

// newTestRouter поднимает полный API поверх sqlite в памяти,
// без Redis (лимиты выключены) и без RabbitMQ (прямая доставка уведомлений)
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	orm, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	manager := db.NewWithORM(orm)
	require.NoError(t, manager.Migrate())

	userStore := store.NewUserStore(manager)
	friendshipStore := store.NewFriendshipStore(manager)
	groupStore := store.NewGroupStore(manager)
	notificationStore := store.NewNotificationStore(manager)

	// Заглушка вместо Weatherbit
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1,"data":[{"city_name":"Kennesaw","temp":72.5}]}`)
	}))
	t.Cleanup(upstream.Close)
	weatherService := services.NewWeatherService("test-key", upstream.URL, 2*time.Second)

	jwtSecret := []byte("test-secret")
	wsManager := services.NewWSConnManager()
	notificationService := services.NewNotificationService(notificationStore, nil, wsManager)
	userService := services.NewUserService(userStore, jwtSecret, time.Hour)
	friendshipService := services.NewFriendshipService(friendshipStore, userStore, notificationService)
	groupService := services.NewGroupService(groupStore)

	router := gin.New()
	routes.PublicApi(router, &routes.Deps{
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService),
		Friends:       handlers.NewFriendHandler(friendshipService),
		Groups:        handlers.NewGroupHandler(groupService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Weather:       handlers.NewWeatherHandler(weatherService),
		WS:            handlers.NewWSHandler(wsManager),
		JWTSecret:     jwtSecret,
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser создает аккаунт через API и возвращает его id
func registerUser(t *testing.T, router *gin.Engine, name, email string) int64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return int64(body["user_id"].(float64))
}

// loginUser возвращает JWT для зарегистрированного аккаунта
func loginUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return body["access_token"].(string)
}
