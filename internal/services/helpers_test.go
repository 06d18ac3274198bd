package services

import (
	"sync"
	"testing"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/mailer"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories/memory"
)

type fixture struct {
	users         *memory.UserRepository
	projects      *memory.ProjectRepository
	comments      *memory.CommentRepository
	notifications *memory.NotificationRepository
	publisher     *recordingPublisher
	mailer        *mailer.ConsoleMailer

	commentSvc      *CommentService
	notificationSvc *NotificationService
	notifier        *Notifier

	alice, bob, carol, mentor models.User
	project                   models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:         memory.NewUserRepository(),
		projects:      memory.NewProjectRepository(),
		comments:      memory.NewCommentRepository(),
		notifications: memory.NewNotificationRepository(),
		publisher:     &recordingPublisher{unread: map[uint]int64{}},
		mailer:        mailer.NewConsoleMailer(logger.Nop()),
	}
	f.alice = f.users.AddUser(models.User{FullName: "Alice", Email: "alice@example.com"})
	f.bob = f.users.AddUser(models.User{FullName: "Bob", Email: "bob@example.com"})
	f.carol = f.users.AddUser(models.User{FullName: "Carol"})
	f.mentor = f.users.AddUser(models.User{FullName: "Dr. Mentor", Role: models.RoleFaculty})
	f.project = f.projects.AddProject(models.Project{
		Title:     "Solar Sharing",
		Teammates: []string{"Alice", "Bob", "Carol"},
		Mentor:    "Dr. Mentor",
	})

	clock := newClock()
	f.commentSvc = NewCommentService(f.comments, f.projects, f.users)
	f.commentSvc.now = clock.Now
	f.notificationSvc = NewNotificationService(f.notifications, f.users, f.publisher, f.mailer, logger.Nop())
	f.notificationSvc.now = clock.Now
	f.notifier = NewNotifier(f.notificationSvc, f.projects, f.users, 4, logger.Nop())
	return f
}

// clock ticks one second per call so creation order is total
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingPublisher struct {
	mu            sync.Mutex
	notifications []models.Notification
	unread        map[uint]int64
}

func (p *recordingPublisher) PublishNotification(n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, n)
}

func (p *recordingPublisher) PublishUnreadCount(userID uint, count int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unread[userID] = count
}

func (p *recordingPublisher) unreadFor(userID uint) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.unread[userID]
	return c, ok
}
