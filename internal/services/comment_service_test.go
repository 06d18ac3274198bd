package services

import (
	"context"
	"testing"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddCommentThenList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.project.ID.Hex()

	comment, err := f.commentSvc.AddComment(ctx, projectID, f.alice.ID, "Great work")
	require.NoError(t, err)
	assert.Equal(t, "Great work", comment.Text)
	assert.NotNil(t, comment.Replies)
	assert.Empty(t, comment.Replies)

	list, err := f.commentSvc.ListCommentsForProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, comment.ID, list[0].ID)
	assert.Equal(t, "Alice", list[0].AuthorName)
	assert.Empty(t, list[0].Replies)
}

func TestAddCommentThenReply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	comment, err := f.commentSvc.AddComment(ctx, f.project.ID.Hex(), f.alice.ID, "Great work")
	require.NoError(t, err)

	updated, err := f.commentSvc.AddReply(ctx, comment.ID.Hex(), f.bob.ID, "Thanks!")
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "Thanks!", updated.Replies[0].Text)
	assert.Equal(t, f.bob.ID, updated.Replies[0].AuthorID)
	assert.Equal(t, "Bob", updated.Replies[0].AuthorName)
}

func TestAddReplyPreservesOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	comment, err := f.commentSvc.AddComment(ctx, f.project.ID.Hex(), f.alice.ID, "Question about the wiring")
	require.NoError(t, err)

	texts := []string{"first", "second", "third", "fourth"}
	for i, text := range texts {
		updated, err := f.commentSvc.AddReply(ctx, comment.ID.Hex(), f.bob.ID, text)
		require.NoError(t, err)
		require.Len(t, updated.Replies, i+1)
		for j := 0; j <= i; j++ {
			assert.Equal(t, texts[j], updated.Replies[j].Text)
		}
	}
}

func TestListCommentsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	projectID := f.project.ID.Hex()

	for _, text := range []string{"one", "two", "three"} {
		_, err := f.commentSvc.AddComment(ctx, projectID, f.alice.ID, text)
		require.NoError(t, err)
	}

	list, err := f.commentSvc.ListCommentsForProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].Text)
	assert.Equal(t, "two", list[1].Text)
	assert.Equal(t, "one", list[2].Text)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
	}
}

func TestListCommentsScopedToProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second := f.projects.AddProject(models.Project{Title: "Wind Map", Teammates: []string{"Bob"}})

	_, err := f.commentSvc.AddComment(ctx, f.project.ID.Hex(), f.alice.ID, "here")
	require.NoError(t, err)

	list, err := f.commentSvc.ListCommentsForProject(ctx, second.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddCommentErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		projectID string
		authorID  uint
		text      string
		wantKind  Kind
	}{
		{"empty text", f.project.ID.Hex(), f.alice.ID, "", KindValidation},
		{"whitespace text", f.project.ID.Hex(), f.alice.ID, "   \n", KindValidation},
		{"unknown project", primitive.NewObjectID().Hex(), f.alice.ID, "hi", KindNotFound},
		{"malformed project id", "P1", f.alice.ID, "hi", KindNotFound},
		{"unknown author", f.project.ID.Hex(), 999, "hi", KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.commentSvc.AddComment(ctx, tt.projectID, tt.authorID, tt.text)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestAddReplyErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comment, err := f.commentSvc.AddComment(ctx, f.project.ID.Hex(), f.alice.ID, "hi")
	require.NoError(t, err)

	_, err = f.commentSvc.AddReply(ctx, comment.ID.Hex(), f.bob.ID, " ")
	assert.True(t, IsValidation(err))

	_, err = f.commentSvc.AddReply(ctx, primitive.NewObjectID().Hex(), f.bob.ID, "hello")
	assert.True(t, IsNotFound(err))

	_, err = f.commentSvc.AddReply(ctx, "not-an-id", f.bob.ID, "hello")
	assert.True(t, IsNotFound(err))

	// failed replies leave the thread untouched
	view, err := f.commentSvc.GetComment(ctx, comment.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, view.Replies)
}

func TestListCommentsInvalidProjectID(t *testing.T) {
	f := newFixture(t)

	_, err := f.commentSvc.ListCommentsForProject(context.Background(), "nope")
	assert.True(t, IsValidation(err))
}

func TestUnknownAuthorResolvesToEmptyName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comment, err := f.commentSvc.AddComment(ctx, f.project.ID.Hex(), f.alice.ID, "hi")
	require.NoError(t, err)

	// replies are not checked against the directory
	view, err := f.commentSvc.AddReply(ctx, comment.ID.Hex(), 4242, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "", view.Replies[0].AuthorName)
	assert.Equal(t, "Alice", view.AuthorName)
}
