package services

import (
	"context"
	"encoding/json"
	"log"

	"thunderbuddy/models"
)

// NotificationStore - персистенция уведомлений
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetForUser(ctx context.Context, id, userID int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	UpdateStatus(ctx context.Context, n *models.Notification, status string) error
}

// EventPublisher - публикация события доставки в очередь
type EventPublisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}

// NotificationService сохраняет уведомление и отдает его в очередь доставки.
// Консьюмер очереди пушит событие в открытые WebSocket-соединения и помечает
// строку доставленной. Без брокера (тесты, локальный запуск) пушим напрямую.
type NotificationService struct {
	notifications NotificationStore
	publisher     EventPublisher
	ws            *WSConnManager
}

func NewNotificationService(notifications NotificationStore, publisher EventPublisher, ws *WSConnManager) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		publisher:     publisher,
		ws:            ws,
	}
}

func (ns *NotificationService) Notify(ctx context.Context, userID int64, message string) error {
	notification := &models.Notification{
		UserID:         userID,
		Message:        message,
		DeliveryStatus: models.NotificationPending,
	}
	if err := ns.notifications.Create(ctx, notification); err != nil {
		return err
	}

	event := NotificationEvent{
		NotificationID: notification.ID,
		UserID:         notification.UserID,
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt,
	}
	if ns.publisher != nil {
		if err := ns.publisher.Publish(ctx, event); err != nil {
			// Уведомление уже сохранено, клиент заберет его по GET
			log.Printf("Failed to publish notification %d: %v", notification.ID, err)
		}
		return nil
	}

	ns.Deliver(ctx, event)
	return nil
}

// Deliver пушит событие в WebSocket и помечает уведомление доставленным
func (ns *NotificationService) Deliver(ctx context.Context, event NotificationEvent) {
	if ns.ws != nil {
		push := struct {
			Event          string `json:"event"`
			NotificationID int64  `json:"notification_id"`
			Message        string `json:"message"`
		}{
			Event:          "notification",
			NotificationID: event.NotificationID,
			Message:        event.Message,
		}
		data, _ := json.Marshal(push)
		ns.ws.Send(event.UserID, data)
	}

	notification, err := ns.notifications.GetForUser(ctx, event.NotificationID, event.UserID)
	if err != nil || notification == nil {
		log.Printf("Failed to resolve notification %d for delivery: %v", event.NotificationID, err)
		return
	}
	if notification.DeliveryStatus != models.NotificationPending {
		return
	}
	if err := ns.notifications.UpdateStatus(ctx, notification, models.NotificationDelivered); err != nil {
		log.Printf("Failed to mark notification %d delivered: %v", event.NotificationID, err)
	}
}

func (ns *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return ns.notifications.ListByUser(ctx, userID)
}

func (ns *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	notification, err := ns.notifications.GetForUser(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotifyNotFound
	}
	return ns.notifications.UpdateStatus(ctx, notification, models.NotificationRead)
}
