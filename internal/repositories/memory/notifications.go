package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[primitive.ObjectID]*models.Notification
	// FailFor makes CreateNotification fail for the given recipient ids.
	FailFor map[uint]error
}

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[primitive.ObjectID]*models.Notification)}
}

func (r *NotificationRepository) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailFor[n.SentTo]; ok {
		return err
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	cp := *n
	r.notifications[n.ID] = &cp
	return nil
}

func (r *NotificationRepository) GetNotificationByID(_ context.Context, id string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notifications[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *NotificationRepository) GetByRecipientID(_ context.Context, recipientID uint) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Notification{}
	for _, n := range r.notifications {
		if n.SentTo == recipientID {
			list = append(list, *n)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID.Hex() > list[j].ID.Hex()
	})
	return list, nil
}

func (r *NotificationRepository) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.SentTo == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(_ context.Context, id string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	n.IsRead = true
	cp := *n
	return &cp, nil
}

func (r *NotificationRepository) MarkAllAsRead(_ context.Context, recipientID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for _, n := range r.notifications {
		if n.SentTo == recipientID && !n.IsRead {
			n.IsRead = true
			modified++
		}
	}
	return modified, nil
}

func (r *NotificationRepository) DeleteNotification(_ context.Context, id string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.notifications, objID)
	return n, nil
}
