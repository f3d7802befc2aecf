package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/repository"
)

// Notifier records notifications in the email log
type Notifier struct {
	log *repository.Collection[entities.Notification]
}

// NewNotifier creates a notifier writing to the given collection
func NewNotifier(notifications *repository.Collection[entities.Notification]) *Notifier {
	return &Notifier{log: notifications}
}

// Send stores the notification at the head of the log. No message leaves the process.
func (n *Notifier) Send(ctx context.Context, notification entities.Notification) error {
	if err := n.log.Add(ctx, notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	log.Printf("[SIMULATED EMAIL SENT] TO: %s SUBJECT: %s", notification.Recipient, notification.Subject)
	return nil
}
