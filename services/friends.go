package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"thunderbuddy/models"
	"thunderbuddy/store"
)

// FriendshipStore - типизированное хранилище строк дружбы (симметричный
// поиск по неупорядоченной паре, вставка, смена статуса, удаление)
type FriendshipStore interface {
	FindByPair(ctx context.Context, userID, otherID int64) (*models.Friendship, error)
	Insert(ctx context.Context, requesterID, targetID int64) (*models.Friendship, error)
	UpdateStatus(ctx context.Context, f *models.Friendship, status models.FriendshipStatus) error
	Delete(ctx context.Context, f *models.Friendship) error
	ListAccepted(ctx context.Context, userID int64) ([]models.Friendship, error)
	ListIncomingPending(ctx context.Context, userID int64) ([]models.Friendship, error)
}

// UserDirectory - единственное, что ядро знает о пользователях
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.UserAccount, error)
}

// Notifier - уведомление второй стороны о событии дружбы, best-effort
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

// FriendView - элемент списка друзей
type FriendView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// FriendshipService - конечный автомат дружбы. Переходы:
//
//	absent   -> pending  (SendRequest)
//	pending  -> accepted (AcceptRequest, только адресат)
//	pending  -> rejected (RejectRequest, только адресат)
//	accepted -> absent   (Unfriend, любая из сторон)
//
// Все остальные переходы запрещены. Авторизация переходов живет только здесь.
type FriendshipService struct {
	friendships FriendshipStore
	users       UserDirectory
	notifier    Notifier
}

func NewFriendshipService(friendships FriendshipStore, users UserDirectory, notifier Notifier) *FriendshipService {
	return &FriendshipService{
		friendships: friendships,
		users:       users,
		notifier:    notifier,
	}
}

// SendRequest создает заявку requester -> target в статусе pending.
// Любая существующая строка пары блокирует повторную заявку независимо
// от статуса - в том числе rejected.
func (fs *FriendshipService) SendRequest(ctx context.Context, requesterID, targetID int64) (*models.Friendship, error) {
	if requesterID == targetID {
		return nil, ErrSelfRequest
	}

	exists, err := fs.users.Exists(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("error checking target user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	existing, err := fs.friendships.FindByPair(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	friendship, err := fs.friendships.Insert(ctx, requesterID, targetID)
	if errors.Is(err, store.ErrDuplicatePair) {
		// Конкурентная заявка успела раньше
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	fs.notify(ctx, requesterID, targetID, "%s sent you a friend request")
	return friendship, nil
}

// AcceptRequest переводит pending -> accepted. Принять заявку может только
// ее адресат: инициатору собственная заявка недоступна.
func (fs *FriendshipService) AcceptRequest(ctx context.Context, actingUserID, otherUserID int64) error {
	friendship, err := fs.pendingFor(ctx, actingUserID, otherUserID)
	if err != nil {
		return err
	}
	if err := fs.friendships.UpdateStatus(ctx, friendship, models.FriendshipAccepted); err != nil {
		return err
	}
	fs.notify(ctx, actingUserID, otherUserID, "%s accepted your friend request")
	return nil
}

// RejectRequest переводит pending -> rejected. Строка сохраняется.
func (fs *FriendshipService) RejectRequest(ctx context.Context, actingUserID, otherUserID int64) error {
	friendship, err := fs.pendingFor(ctx, actingUserID, otherUserID)
	if err != nil {
		return err
	}
	return fs.friendships.UpdateStatus(ctx, friendship, models.FriendshipRejected)
}

// Unfriend удаляет подтвержденную дружбу. pending и rejected не трогаем.
func (fs *FriendshipService) Unfriend(ctx context.Context, actingUserID, otherUserID int64) error {
	friendship, err := fs.friendships.FindByPair(ctx, actingUserID, otherUserID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return ErrFriendshipNotFound
	}
	if friendship.Status != models.FriendshipAccepted {
		return ErrInvalidState
	}
	return fs.friendships.Delete(ctx, friendship)
}

// ListFriends возвращает подтвержденных друзей пользователя. Друзья,
// которых каталог пользователей не может разрешить, молча пропускаются.
func (fs *FriendshipService) ListFriends(ctx context.Context, userID int64) ([]FriendView, error) {
	friendships, err := fs.friendships.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]FriendView, 0, len(friendships))
	for _, f := range friendships {
		friend, err := fs.users.GetByID(ctx, f.OtherID(userID))
		if err != nil {
			return nil, err
		}
		if friend == nil {
			continue
		}
		friends = append(friends, FriendView{
			UserID: friend.ID,
			Name:   friend.Name,
			Email:  friend.Email,
		})
	}
	return friends, nil
}

// ListPendingRequests возвращает входящие заявки пользователя
func (fs *FriendshipService) ListPendingRequests(ctx context.Context, userID int64) ([]FriendView, error) {
	friendships, err := fs.friendships.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, err
	}

	requesters := make([]FriendView, 0, len(friendships))
	for _, f := range friendships {
		requester, err := fs.users.GetByID(ctx, f.UserAID)
		if err != nil {
			return nil, err
		}
		if requester == nil {
			continue
		}
		requesters = append(requesters, FriendView{
			UserID: requester.ID,
			Name:   requester.Name,
			Email:  requester.Email,
		})
	}
	return requesters, nil
}

// pendingFor находит pending заявку, адресованную actingUserID
func (fs *FriendshipService) pendingFor(ctx context.Context, actingUserID, otherUserID int64) (*models.Friendship, error) {
	friendship, err := fs.friendships.FindByPair(ctx, actingUserID, otherUserID)
	if err != nil {
		return nil, err
	}
	if friendship == nil {
		return nil, ErrFriendshipNotFound
	}
	if friendship.Status != models.FriendshipPending {
		return nil, ErrInvalidState
	}
	if !friendship.IsTarget(actingUserID) {
		// Инициатор не может принять или отклонить собственную заявку
		return nil, ErrInvalidState
	}
	return friendship, nil
}

// notify отправляет уведомление recipientID от имени actorID, не роняя операцию
func (fs *FriendshipService) notify(ctx context.Context, actorID, recipientID int64, format string) {
	if fs.notifier == nil {
		return
	}
	actorName := fmt.Sprintf("User %d", actorID)
	if actor, err := fs.users.GetByID(ctx, actorID); err == nil && actor != nil {
		actorName = actor.Name
	}
	if err := fs.notifier.Notify(ctx, recipientID, fmt.Sprintf(format, actorName)); err != nil {
		log.Printf("Failed to notify user %d: %v", recipientID, err)
	}
}
