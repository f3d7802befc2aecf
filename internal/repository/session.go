package repository

import (
	"context"
	"fmt"
)

// SetSession stores the logged-in flag
func (r *Repository) SetSession(ctx context.Context) error {
	if err := r.store.Set(ctx, KeySession, "true"); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	return nil
}

// ClearSession removes the logged-in flag
func (r *Repository) ClearSession(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

// HasSession reports whether the logged-in flag is set
func (r *Repository) HasSession(ctx context.Context) (bool, error) {
	v, found, err := r.store.Get(ctx, KeySession)
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return found && v == "true", nil
}
