package repositories

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// testDatabase connects to MONGO_TEST_URI and returns a throwaway database.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("showcase_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoCommentRepository(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoCommentRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	projectID := primitive.NewObjectID()
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, text := range []string{"old", "new"} {
		c := &models.Comment{ProjectID: projectID, AuthorID: 1, Text: text, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.CreateComment(ctx, c))
	}

	list, err := repo.GetCommentsByProjectID(ctx, projectID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Text)
	assert.NotNil(t, list[0].Replies)

	target := list[1].ID.Hex()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendReply(ctx, target, models.Reply{Text: "r", AuthorID: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetCommentByID(ctx, target)
	require.NoError(t, err)
	assert.Len(t, got.Replies, 10)

	_, err = repo.AppendReply(ctx, primitive.NewObjectID().Hex(), models.Reply{Text: "r"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetCommentByID(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestMongoNotificationRepository(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewMongoNotificationRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	n := &models.Notification{SenderID: 1, SentTo: 2, Title: "t", Message: "m", Type: models.NotificationTypeGeneral}
	require.NoError(t, repo.CreateNotification(ctx, n))

	count, err := repo.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	for i := 0; i < 2; i++ {
		read, err := repo.MarkAsRead(ctx, n.ID.Hex())
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	}

	deleted, err := repo.DeleteNotification(ctx, n.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, n.ID, deleted.ID)

	_, err = repo.DeleteNotification(ctx, n.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.GetByRecipientID(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}
