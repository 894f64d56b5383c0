package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Полный жизненный цикл: заявка -> подтверждение -> список -> unfriend
func TestFriendshipLifecycle(t *testing.T) {
	router := newTestRouter(t)

	aliceID := registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")
	bob := loginUser(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/friends/accept/%d", aliceID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/friends", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	friends := decodeBody(t, w)["friends"].([]interface{})
	require.Len(t, friends, 1)
	friend := friends[0].(map[string]interface{})
	assert.Equal(t, float64(bobID), friend["user_id"])
	assert.Equal(t, "Bob", friend["name"])
	assert.Equal(t, "bob@example.com", friend["email"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/friends", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["friends"])
}

// Отклоненная заявка терминальна: unfriend по ней отвечает 409
func TestRejectFlow(t *testing.T) {
	router := newTestRouter(t)

	aliceID := registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")
	bob := loginUser(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/friends/reject/%d", aliceID), bob, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), alice, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// И повторная заявка блокируется
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendRequestToSelf(t *testing.T) {
	router := newTestRouter(t)

	aliceID := registerUser(t, router, "Alice", "alice@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", aliceID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendRequestUnknownTarget(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Alice", "alice@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/friends/request/9999", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendRequestDuplicate(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Инициатор не может сам принять свою заявку
func TestAcceptOwnRequest(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/friends/accept/%d", bobID), alice, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAcceptAbsentFriendship(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/friends/accept/%d", bobID), alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFriendsUnauthenticated(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/friends/request/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidFriendIDParam(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "Alice", "alice@example.com")
	alice := loginUser(t, router, "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/friends/request/abc", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Заявка и подтверждение оставляют уведомления второй стороне
func TestFriendshipNotifications(t *testing.T) {
	router := newTestRouter(t)

	aliceID := registerUser(t, router, "Alice", "alice@example.com")
	bobID := registerUser(t, router, "Bob", "bob@example.com")
	alice := loginUser(t, router, "alice@example.com")
	bob := loginUser(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", bobID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notifications", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeBody(t, w)["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	first := notifications[0].(map[string]interface{})
	assert.Contains(t, first["message"], "Alice")

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/friends/accept/%d", aliceID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notifications", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications = decodeBody(t, w)["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	first = notifications[0].(map[string]interface{})
	assert.Contains(t, first["message"], "Bob")

	// Пометить прочитанным
	id := int64(first["notification_id"].(float64))
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", id), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
