package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/pkg/errors"
)

// CommentService manages threaded comments on projects
type CommentService struct {
	comments repositories.CommentRepository
	projects repositories.ProjectRepository
	users    repositories.UserRepository
	now      func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, projects repositories.ProjectRepository, users repositories.UserRepository) *CommentService {
	return &CommentService{
		comments: comments,
		projects: projects,
		users:    users,
		now:      time.Now,
	}
}

// AddComment creates a comment with no replies. It has no notification side
// effect; fan-out is the caller's job.
func (s *CommentService) AddComment(ctx context.Context, projectID string, authorID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError("comment text is required")
	}

	project, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "project", projectID)
	}
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFoundError("author %d not found", authorID)
		}
		return nil, PersistenceError(err, "looking up author %d", authorID)
	}

	comment := &models.Comment{
		ProjectID: project.ID,
		AuthorID:  authorID,
		Text:      text,
		Replies:   []models.Reply{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, PersistenceError(err, "creating comment")
	}
	return comment, nil
}

// ListCommentsForProject returns every comment of the project newest first,
// with comment and reply author names resolved.
func (s *CommentService) ListCommentsForProject(ctx context.Context, projectID string) ([]models.CommentView, error) {
	comments, err := s.comments.GetCommentsByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, ValidationError("invalid project id %q", projectID)
		}
		return nil, PersistenceError(err, "listing comments for project %s", projectID)
	}
	return s.resolve(ctx, comments...)
}

// GetComment returns a single comment with author names resolved
func (s *CommentService) GetComment(ctx context.Context, commentID string) (*models.CommentView, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, lookupError(err, "comment", commentID)
	}
	views, err := s.resolve(ctx, *comment)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// AddReply appends a reply to the comment and returns the updated comment.
func (s *CommentService) AddReply(ctx context.Context, commentID string, authorID uint, text string) (*models.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError("reply text is required")
	}

	reply := models.Reply{
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: s.now().UTC(),
	}
	comment, err := s.comments.AppendReply(ctx, commentID, reply)
	if err != nil {
		return nil, lookupError(err, "comment", commentID)
	}
	views, err := s.resolve(ctx, *comment)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CommentService) resolve(ctx context.Context, comments ...models.Comment) ([]models.CommentView, error) {
	var ids []uint
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
		for _, r := range c.Replies {
			ids = append(ids, r.AuthorID)
		}
	}
	users, err := loadUsers(ctx, s.users, ids)
	if err != nil {
		return nil, PersistenceError(err, "resolving comment authors")
	}

	views := make([]models.CommentView, len(comments))
	for i, c := range comments {
		replies := make([]models.ReplyView, len(c.Replies))
		for j, r := range c.Replies {
			replies[j] = models.ReplyView{Reply: r, AuthorName: users.name(r.AuthorID)}
		}
		views[i] = models.CommentView{
			ID:         c.ID,
			ProjectID:  c.ProjectID,
			AuthorID:   c.AuthorID,
			AuthorName: users.name(c.AuthorID),
			Text:       c.Text,
			Replies:    replies,
			CreatedAt:  c.CreatedAt,
		}
	}
	return views, nil
}

// lookupError maps repository lookup failures; malformed ids count as not found.
func lookupError(err error, entity, id string) error {
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return NotFoundError("%s %s not found", entity, id)
	}
	return PersistenceError(err, "looking up %s %s", entity, id)
}
