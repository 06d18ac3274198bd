package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/mailer"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
)

// Publisher pushes notification events to connected clients
type Publisher interface {
	PublishNotification(n models.Notification)
	PublishUnreadCount(userID uint, count int64)
}

// NotificationInput is everything needed to create one notification
type NotificationInput struct {
	SenderID  uint
	Recipient models.Recipient
	Title     string
	Message   string
	Type      models.NotificationType
}

// NotificationService creates and manages per-user notifications.
// Realtime and e-mail delivery are best effort and never fail an operation.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	publisher     Publisher
	mailer        mailer.Mailer
	log           logger.Logger
	now           func() time.Time
}

// NewNotificationService creates a new NotificationService. publisher and
// mail may be nil.
func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	publisher Publisher,
	mail mailer.Mailer,
	log logger.Logger,
) *NotificationService {
	if log == nil {
		log = logger.Nop()
	}
	return &NotificationService{
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		mailer:        mail,
		log:           log,
		now:           time.Now,
	}
}

// CreateNotification resolves the recipient and persists an unread notification.
func (s *NotificationService) CreateNotification(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if title == "" {
		return nil, ValidationError("notification title is required")
	}
	if message == "" {
		return nil, ValidationError("notification message is required")
	}
	typ := in.Type.OrDefault()
	if !typ.Valid() {
		return nil, ValidationError("unknown notification type %q", in.Type)
	}

	recipient, err := resolveRecipient(ctx, s.users, in.Recipient)
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		SenderID:  in.SenderID,
		SentTo:    recipient.ID,
		Title:     title,
		Message:   message,
		Type:      typ,
		IsRead:    false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		return nil, PersistenceError(err, "creating notification for user %d", recipient.ID)
	}

	s.deliver(ctx, *n, recipient)
	return n, nil
}

func (s *NotificationService) deliver(ctx context.Context, n models.Notification, recipient *models.User) {
	if s.publisher != nil {
		s.publisher.PublishNotification(n)
		s.pushUnreadCount(ctx, n.SentTo)
	}
	if s.mailer == nil || recipient.Email == "" {
		return
	}
	msg := mailer.Message{
		To:      mail.Address{Name: recipient.FullName, Address: recipient.Email},
		Subject: n.Title,
		Text:    n.Message,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("failed to mirror notification by e-mail", err)
	}
}

func (s *NotificationService) pushUnreadCount(ctx context.Context, userID uint) {
	if s.publisher == nil {
		return
	}
	count, err := s.notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		s.log.Warn("failed to count unread notifications", err)
		return
	}
	s.publisher.PublishUnreadCount(userID, count)
}

// ListNotificationsForUser returns the user's notifications newest first
// with sender info attached.
func (s *NotificationService) ListNotificationsForUser(ctx context.Context, userID uint) ([]models.EnrichedNotification, error) {
	notifications, err := s.notifications.GetByRecipientID(ctx, userID)
	if err != nil {
		return nil, PersistenceError(err, "listing notifications for user %d", userID)
	}

	ids := make([]uint, len(notifications))
	for i, n := range notifications {
		ids[i] = n.SenderID
	}
	senders, err := loadUsers(ctx, s.users, ids)
	if err != nil {
		return nil, PersistenceError(err, "resolving notification senders")
	}

	enriched := make([]models.EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = models.EnrichedNotification{
			Notification: n,
			Sender:       senders.compact(n.SenderID),
		}
	}
	return enriched, nil
}

// MarkAsRead sets is_read on the notification. Marking twice is a no-op.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.notifications.MarkAsRead(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification", id)
	}
	s.pushUnreadCount(ctx, n.SentTo)
	return n, nil
}

// MarkAllAsRead marks every unread notification of the user and returns how
// many changed.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	updated, err := s.notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, PersistenceError(err, "marking notifications of user %d as read", userID)
	}
	s.pushUnreadCount(ctx, userID)
	return updated, nil
}

// DeleteNotification removes the notification permanently.
func (s *NotificationService) DeleteNotification(ctx context.Context, id string) error {
	n, err := s.notifications.DeleteNotification(ctx, id)
	if err != nil {
		return lookupError(err, "notification", id)
	}
	if !n.IsRead {
		s.pushUnreadCount(ctx, n.SentTo)
	}
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, PersistenceError(err, "counting unread notifications of user %d", userID)
	}
	return count, nil
}
