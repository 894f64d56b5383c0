package services

import "errors"

// Виды ошибок ядра. Хэндлеры отображают их в фиксированные HTTP-статусы
// через errors.Is, все остальное считается внутренней ошибкой (500).
var (
	ErrSelfRequest        = errors.New("cannot send friend request to yourself")
	ErrUserNotFound       = errors.New("user not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrAlreadyExists      = errors.New("friendship already exists")
	ErrInvalidState       = errors.New("invalid friendship status")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotifyNotFound     = errors.New("notification not found")
	ErrBadWeatherPayload  = errors.New("invalid weather response format")
)
