package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"thunderbuddy/models"
	"thunderbuddy/store"
)

// UserStore - персистенция аккаунтов
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	Create(ctx context.Context, user *models.UserAccount) error
	Update(ctx context.Context, user *models.UserAccount) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// ProfileUpdate - частичное обновление профиля, nil-поля не трогаются
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	City           *string `json:"city"`
	ProfilePicture *string `json:"profile_picture"`
}

type UserService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(users UserStore, jwtSecret []byte, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &UserService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register хэширует пароль и создает аккаунт. Email уникален.
func (us *UserService) Register(ctx context.Context, user *models.UserAccount) (int64, error) {
	if user.Username == "" {
		user.Username = strings.Split(user.Email, "@")[0]
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	err = us.users.Create(ctx, user)
	if errors.Is(err, store.ErrDuplicateUser) {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login проверяет пароль и выдает HS256 JWT с subject = user id
func (us *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := us.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !verifyPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"exp": time.Now().Add(us.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(us.jwtSecret)
}

func (us *UserService) GetProfile(ctx context.Context, userID int64) (*models.UserAccount, error) {
	user, err := us.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.UserAccount, error) {
	user, err := us.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}

	if err := us.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// hashPassword - argon2id, формат hex(salt)$hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
