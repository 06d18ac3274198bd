package services

import (
	"context"
	"testing"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFanOutReportsEachRecipient(t *testing.T) {
	f := newFixture(t)
	f.notifications.FailFor = map[uint]error{f.carol.ID: errors.New("write conflict")}

	recipients := []models.Recipient{
		{FullName: "Alice"},
		{FullName: "Nobody"},
		{ID: f.carol.ID},
		{ID: f.bob.ID},
	}
	results := f.notifier.FanOut(context.Background(), f.mentor.ID, recipients, "Heads up", "Demo day moved", models.NotificationTypeGeneral)
	require.Len(t, results, len(recipients))

	for i, r := range results {
		assert.Equal(t, recipients[i], r.Recipient)
	}
	require.NoError(t, results[0].Err)
	assert.Equal(t, f.alice.ID, results[0].Notification.SentTo)

	assert.True(t, IsNotFound(results[1].Err))
	assert.NotEmpty(t, results[1].Error)
	assert.Nil(t, results[1].Notification)

	assert.Equal(t, KindPersistence, KindOf(results[2].Err))

	require.NoError(t, results[3].Err)
	assert.Equal(t, f.bob.ID, results[3].Notification.SentTo)

	// no rollback of the successful ones
	aliceList, err := f.notificationSvc.ListNotificationsForUser(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceList, 1)
}

func TestFanOutEmpty(t *testing.T) {
	f := newFixture(t)

	results := f.notifier.FanOut(context.Background(), f.alice.ID, nil, "t", "m", "")
	assert.Empty(t, results)
}

func TestNotifyProjectMembersSkipsActor(t *testing.T) {
	f := newFixture(t)

	results, err := f.notifier.NotifyProjectMembers(context.Background(), f.project.ID.Hex(), f.alice.ID, EventCommentAdded("Great work"))
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		require.NoError(t, r.Err)
		names = append(names, r.Recipient.FullName)
		assert.Equal(t, models.NotificationTypeProjectComment, r.Notification.Type)
		assert.Equal(t, "Alice commented on Solar Sharing: Great work", r.Notification.Message)
		assert.Equal(t, f.alice.ID, r.Notification.SenderID)
	}
	assert.Equal(t, []string{"Bob", "Carol", "Dr. Mentor"}, names)

	list, err := f.notificationSvc.ListNotificationsForUser(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyProjectMembersStatusChange(t *testing.T) {
	f := newFixture(t)

	results, err := f.notifier.NotifyProjectMembers(context.Background(), f.project.ID.Hex(), f.mentor.ID,
		EventStatusChanged(models.ProjectStatusApproved, "nice job"))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, models.NotificationTypeProjectStatus, r.Notification.Type)
		assert.Equal(t, "Dr. Mentor marked Solar Sharing as approved (nice job)", r.Notification.Message)
	}
}

func TestNotifyProjectMembersUnknownProject(t *testing.T) {
	f := newFixture(t)

	_, err := f.notifier.NotifyProjectMembers(context.Background(), primitive.NewObjectID().Hex(), f.alice.ID, EventCommentAdded("x"))
	assert.True(t, IsNotFound(err))
}

func TestNotifyProjectMembersUnresolvedTeammate(t *testing.T) {
	f := newFixture(t)
	project := f.projects.AddProject(models.Project{Title: "Ghost Town", Teammates: []string{"Bob", "Ex Student"}})

	results, err := f.notifier.NotifyProjectMembers(context.Background(), project.ID.Hex(), f.alice.ID, EventReplyAdded("ok"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.True(t, IsNotFound(results[1].Err))
}

func TestExcerpt(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'é'
	}
	got := excerpt(string(long))
	assert.Equal(t, 143, len([]rune(got)))
	assert.Equal(t, "short", excerpt("  short "))
}
