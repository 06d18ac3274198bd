package mailer

import (
	"context"
	"net/mail"
	"sync"

	"github.com/anonto42/project-showcase/backend/internal/logger"
)

// Message is a plain-text e-mail
type Message struct {
	To      mail.Address
	Subject string
	Text    string
}

// Mailer delivers messages. Implementations must not block on the network.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleMailer logs messages instead of sending them and keeps a copy of each.
type ConsoleMailer struct {
	log  logger.Logger
	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer(log logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.log.Info("mail: "+msg.Subject, map[string]string{"to": msg.To.String(), "text": msg.Text})
	return nil
}

// Sent returns the messages handed to the mailer so far
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
