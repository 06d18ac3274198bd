package repositories

import (
	"context"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationByID(ctx context.Context, id string) (*models.Notification, error)
	// GetByRecipientID returns every notification sent to the user, newest first.
	GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	// DeleteNotification removes the record and returns what was deleted.
	DeleteNotification(ctx context.Context, id string) (*models.Notification, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sent_to", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sent_to", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	return err
}

func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *MongoNotificationRepository) GetNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var notification models.Notification
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&notification); err != nil {
		return nil, translateMongoError(err)
	}
	return &notification, nil
}

func (r *MongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sent_to": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"sent_to": recipientID, "is_read": false})
}

// MarkAsRead sets is_read unconditionally; a second call matches the same
// document and leaves it read.
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var notification models.Notification
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"is_read": true}}, opts).Decode(&notification)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return &notification, nil
}

func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, bson.M{"sent_to": recipientID, "is_read": false}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var notification models.Notification
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&notification); err != nil {
		return nil, translateMongoError(err)
	}
	return &notification, nil
}
