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

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[primitive.ObjectID]*models.Comment
}

var _ repositories.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (r *CommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	r.comments[comment.ID] = cloneComment(comment)
	return nil
}

func (r *CommentRepository) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneComment(c), nil
}

func (r *CommentRepository) GetCommentsByProjectID(_ context.Context, projectID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	comments := []models.Comment{}
	for _, c := range r.comments {
		if c.ProjectID == objID {
			comments = append(comments, *cloneComment(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID.Hex() > comments[j].ID.Hex()
	})
	return comments, nil
}

func (r *CommentRepository) AppendReply(_ context.Context, commentID string, reply models.Reply) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	c.Replies = append(c.Replies, reply)
	return cloneComment(c), nil
}

func cloneComment(c *models.Comment) *models.Comment {
	cp := *c
	cp.Replies = append([]models.Reply{}, c.Replies...)
	return &cp
}
