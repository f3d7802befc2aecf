package usecases

import (
	"context"
	"fmt"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/repository"
)

// NotificationUseCase reads the simulated email log
type NotificationUseCase struct {
	repo *repository.Repository
}

// NewNotificationUseCase creates a new notification use case
func NewNotificationUseCase(repo *repository.Repository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListNotifications returns the log, newest first
func (uc *NotificationUseCase) ListNotifications(ctx context.Context) ([]entities.Notification, error) {
	return uc.repo.Notifications.Read(ctx)
}

// MarkRead flags one notification as read
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	found, err := uc.repo.Notifications.Update(ctx, id, map[string]any{"is_read": true})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !found {
		return fmt.Errorf("notification %q: %w", id, ErrNotFound)
	}
	return nil
}

// MarkAllRead flags every notification as read and returns how many there are
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) (int, error) {
	n, err := uc.repo.Notifications.UpdateAll(ctx, map[string]any{"is_read": true})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}

// UnreadCount returns the number of unread notifications
func (uc *NotificationUseCase) UnreadCount(ctx context.Context) (int, error) {
	items, err := uc.repo.Notifications.Read(ctx)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	return unread, nil
}
