package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a top-level comment on a project. Replies are embedded and
// append-only; the slice is stored as an empty array, never null, so that
// $push always has an array to extend.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `json:"project_id" bson:"project_id"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Text      string             `json:"text" bson:"text"`
	Replies   []Reply            `json:"replies" bson:"replies"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Reply is owned by its parent comment and is not addressable on its own
type Reply struct {
	Text      string    `json:"text" bson:"text"`
	AuthorID  uint      `json:"author_id" bson:"author_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a project
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// ReplyView is a reply with its author's display name resolved
type ReplyView struct {
	Reply
	AuthorName string `json:"author_name"`
}

// CommentView is a comment with author names resolved for display
type CommentView struct {
	ID         primitive.ObjectID `json:"id"`
	ProjectID  primitive.ObjectID `json:"project_id"`
	AuthorID   uint               `json:"author_id"`
	AuthorName string             `json:"author_name"`
	Text       string             `json:"text"`
	Replies    []ReplyView        `json:"replies"`
	CreatedAt  time.Time          `json:"created_at"`
}
