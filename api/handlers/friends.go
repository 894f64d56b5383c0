package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thunderbuddy/api/middleware"
	"thunderbuddy/services"
)

type FriendHandler struct {
	friends *services.FriendshipService
}

func NewFriendHandler(friends *services.FriendshipService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// SendRequest - POST /api/friends/request/:friend_id
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := c.GetInt64("user_id")
	friendID, ok := friendIDParam(c)
	if !ok {
		return
	}

	friendship, err := h.friends.SendRequest(c.Request.Context(), userID, friendID)
	middleware.RecordFriendshipOperation("send_request", err)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Friend request sent",
		"status":  friendship.Status,
	})
}

// Accept - PUT /api/friends/accept/:friend_id
func (h *FriendHandler) Accept(c *gin.Context) {
	userID := c.GetInt64("user_id")
	friendID, ok := friendIDParam(c)
	if !ok {
		return
	}

	err := h.friends.AcceptRequest(c.Request.Context(), userID, friendID)
	middleware.RecordFriendshipOperation("accept", err)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// Reject - PUT /api/friends/reject/:friend_id
func (h *FriendHandler) Reject(c *gin.Context) {
	userID := c.GetInt64("user_id")
	friendID, ok := friendIDParam(c)
	if !ok {
		return
	}

	err := h.friends.RejectRequest(c.Request.Context(), userID, friendID)
	middleware.RecordFriendshipOperation("reject", err)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Unfriend - DELETE /api/friends/:friend_id
func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID := c.GetInt64("user_id")
	friendID, ok := friendIDParam(c)
	if !ok {
		return
	}

	err := h.friends.Unfriend(c.Request.Context(), userID, friendID)
	middleware.RecordFriendshipOperation("unfriend", err)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List - GET /api/friends
func (h *FriendHandler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friends, err := h.friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListRequests - GET /api/friends/requests (входящие заявки)
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")

	requests, err := h.friends.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// renderError отображает вид ошибки в фиксированный статус: недопустимые
// переходы автомата - всегда 409, повторная заявка - 400 как в исходном API
func (h *FriendHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send friend request to yourself"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrFriendshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friendship already exists"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid friendship status"})
	default:
		log.Printf("Friendship operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func friendIDParam(c *gin.Context) (int64, bool) {
	friendID, err := strconv.ParseInt(c.Param("friend_id"), 10, 64)
	if err != nil || friendID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return friendID, true
}
