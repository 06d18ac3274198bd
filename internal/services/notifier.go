package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const defaultFanOutConcurrency = 8

// FanOutResult is the outcome of one recipient of a fan-out
type FanOutResult struct {
	Recipient    models.Recipient     `json:"recipient"`
	Notification *models.Notification `json:"notification,omitempty"`
	Err          error                `json:"-"`
	Error        string               `json:"error,omitempty"`
}

// ProjectEvent describes a project activity that project members hear about.
// Format receives the actor name, the project title and Detail, in that order.
type ProjectEvent struct {
	Type   models.NotificationType
	Title  string
	Format string
	Detail string
}

func EventCommentAdded(text string) ProjectEvent {
	return ProjectEvent{
		Type:   models.NotificationTypeProjectComment,
		Title:  "New comment on your project",
		Format: "%[1]s commented on %[2]s: %[3]s",
		Detail: excerpt(text),
	}
}

func EventReplyAdded(text string) ProjectEvent {
	return ProjectEvent{
		Type:   models.NotificationTypeProjectComment,
		Title:  "New reply on your project",
		Format: "%[1]s replied to a comment on %[2]s: %[3]s",
		Detail: excerpt(text),
	}
}

func EventStatusChanged(status models.ProjectStatus, note string) ProjectEvent {
	detail := string(status)
	if note = strings.TrimSpace(note); note != "" {
		detail += " (" + note + ")"
	}
	return ProjectEvent{
		Type:   models.NotificationTypeProjectStatus,
		Title:  "Project status updated",
		Format: "%[1]s marked %[2]s as %[3]s",
		Detail: detail,
	}
}

// Notifier sends the same notification to many recipients
type Notifier struct {
	notifications *NotificationService
	projects      repositories.ProjectRepository
	users         repositories.UserRepository
	limit         int
	log           logger.Logger
}

// NewNotifier creates a Notifier issuing at most concurrency creates at once
func NewNotifier(notifications *NotificationService, projects repositories.ProjectRepository, users repositories.UserRepository, concurrency int, log logger.Logger) *Notifier {
	if concurrency <= 0 {
		concurrency = defaultFanOutConcurrency
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{
		notifications: notifications,
		projects:      projects,
		users:         users,
		limit:         concurrency,
		log:           log,
	}
}

// FanOut creates one notification per recipient. Each recipient succeeds or
// fails on its own; results come back in input order.
func (n *Notifier) FanOut(ctx context.Context, senderID uint, recipients []models.Recipient, title, message string, typ models.NotificationType) []FanOutResult {
	results := make([]FanOutResult, len(recipients))

	var g errgroup.Group
	g.SetLimit(n.limit)
	for i, r := range recipients {
		i, r := i, r
		g.Go(func() error {
			notification, err := n.notifications.CreateNotification(ctx, NotificationInput{
				SenderID:  senderID,
				Recipient: r,
				Title:     title,
				Message:   message,
				Type:      typ,
			})
			results[i] = FanOutResult{Recipient: r, Notification: notification, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			// never abort siblings
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// NotifyProjectMembers tells the project's teammates and mentor about ev,
// skipping the actor.
func (n *Notifier) NotifyProjectMembers(ctx context.Context, projectID string, actorID uint, ev ProjectEvent) ([]FanOutResult, error) {
	project, err := n.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "project", projectID)
	}

	actorName := ""
	if actor, err := n.users.GetUserByID(ctx, actorID); err == nil {
		actorName = actor.FullName
	} else {
		n.log.Debug("actor not in directory", actorID)
	}

	var recipients []models.Recipient
	for _, member := range project.Members() {
		if actorName != "" && strings.EqualFold(member, actorName) {
			continue
		}
		recipients = append(recipients, models.Recipient{FullName: member})
	}
	if len(recipients) == 0 {
		return []FanOutResult{}, nil
	}

	who := actorName
	if who == "" {
		who = "Someone"
	}
	message := fmt.Sprintf(ev.Format, who, project.Title, ev.Detail)
	results := n.FanOut(ctx, actorID, recipients, ev.Title, message, ev.Type)
	for _, r := range results {
		if r.Err != nil {
			n.log.Warn("project notification not delivered", r.Recipient.FullName, r.Err)
		}
	}
	return results, nil
}

func excerpt(text string) string {
	const max = 140
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
