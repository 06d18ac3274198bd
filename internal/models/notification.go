package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is the closed set of notification kinds
type NotificationType string

const (
	NotificationTypeProjectComment    NotificationType = "projectComment"
	NotificationTypeLike              NotificationType = "like"
	NotificationTypeRating            NotificationType = "rating"
	NotificationTypeProjectSubmission NotificationType = "projectSubmission"
	NotificationTypeProjectStatus     NotificationType = "projectStatus"
	NotificationTypeAchievement       NotificationType = "achievement"
	NotificationTypeGeneral           NotificationType = "general"
)

var notificationTypes = map[NotificationType]bool{
	NotificationTypeProjectComment:    true,
	NotificationTypeLike:              true,
	NotificationTypeRating:            true,
	NotificationTypeProjectSubmission: true,
	NotificationTypeProjectStatus:     true,
	NotificationTypeAchievement:       true,
	NotificationTypeGeneral:           true,
}

// Valid reports whether t is one of the known notification types
func (t NotificationType) Valid() bool {
	return notificationTypes[t]
}

// OrDefault maps the empty type to general
func (t NotificationType) OrDefault() NotificationType {
	if t == "" {
		return NotificationTypeGeneral
	}
	return t
}

// Notification represents a per-user notification stored in MongoDB.
// IsRead only ever moves from false to true.
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID  uint               `json:"sender_id" bson:"sender_id"`
	SentTo    uint               `json:"sent_to" bson:"sent_to"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Type      NotificationType   `json:"type" bson:"type"`
	IsRead    bool               `json:"is_read" bson:"is_read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Recipient addresses a user either by id or by unique full name.
// ID wins when both are set.
type Recipient struct {
	ID       uint   `json:"id,omitempty" validate:"required_without=FullName"`
	FullName string `json:"full_name,omitempty" validate:"required_without=ID,max=120"`
}

// CreateNotificationRequest defines the request body for a single notification
type CreateNotificationRequest struct {
	SentTo   uint             `json:"sent_to,omitempty" validate:"required_without=FullName"`
	FullName string           `json:"full_name,omitempty" validate:"required_without=SentTo,max=120"`
	Title    string           `json:"title" validate:"required,max=200"`
	Message  string           `json:"message" validate:"required,max=2000"`
	Type     NotificationType `json:"type,omitempty" validate:"omitempty,notification_type"`
}

// Recipient returns the addressed recipient of the request
func (r *CreateNotificationRequest) Recipient() Recipient {
	return Recipient{ID: r.SentTo, FullName: r.FullName}
}

// BatchNotificationRequest defines the request body for a server-side fan-out
type BatchNotificationRequest struct {
	Recipients []Recipient      `json:"recipients" validate:"required,min=1,max=100,dive"`
	Title      string           `json:"title" validate:"required,max=200"`
	Message    string           `json:"message" validate:"required,max=2000"`
	Type       NotificationType `json:"type,omitempty" validate:"omitempty,notification_type"`
}

// EnrichedNotification includes sender info
type EnrichedNotification struct {
	Notification
	Sender UserCompact `json:"sender"`
}
