package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/inventory"
	"github.com/abelzeko/mionjo/internal/repository"
)

// UserFilter selects users. Search matches full name, email or organization.
type UserFilter struct {
	Search string            `json:"search"`
	Role   entities.UserRole `json:"role"`
}

// UserRequest describes a new account
type UserRequest struct {
	FullName     string            `json:"full_name" validate:"required,max=200"`
	Email        string            `json:"email" validate:"required,email"`
	Role         entities.UserRole `json:"role" validate:"required,oneof=admin ong technicien communaute"`
	Organization string            `json:"organization"`
	Region       string            `json:"region"`
}

// UserUpdate lists the fields to change. Nil fields are kept.
type UserUpdate struct {
	FullName     *string            `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Email        *string            `json:"email,omitempty" validate:"omitempty,email"`
	Role         *entities.UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin ong technicien communaute"`
	Organization *string            `json:"organization,omitempty"`
	Region       *string            `json:"region,omitempty"`
}

// UserUseCase administers accounts
type UserUseCase struct {
	repo  *repository.Repository
	newID func() string
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(repo *repository.Repository, newID func() string) *UserUseCase {
	return &UserUseCase{repo: repo, newID: newID}
}

// ListUsers returns the users matching filter
func (uc *UserUseCase) ListUsers(ctx context.Context, filter UserFilter) ([]entities.User, error) {
	users, err := uc.repo.Users.Read(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]entities.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" &&
			!inventory.Contains(u.FullName, filter.Search) &&
			!inventory.Contains(u.Email, filter.Search) &&
			!inventory.Contains(u.Organization, filter.Search) {
			continue
		}
		matched = append(matched, u)
	}
	return matched, nil
}

// GetUser returns the user with the given id
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	u, err := uc.repo.Users.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return u, nil
}

// CreateUser adds an active account. Emails are unique.
func (uc *UserUseCase) CreateUser(ctx context.Context, req UserRequest) (entities.User, error) {
	if err := validateRequest(req); err != nil {
		return entities.User{}, err
	}
	if err := uc.checkEmailFree(ctx, req.Email, ""); err != nil {
		return entities.User{}, err
	}
	user := entities.User{
		ID:           uc.newID(),
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		Organization: req.Organization,
		Region:       req.Region,
		IsActive:     true,
	}
	if err := uc.repo.Users.Add(ctx, user); err != nil {
		return entities.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	log.Printf("Created user %s (%s, %s)", user.ID, user.Email, user.Role)
	return user, nil
}

// UpdateUser changes the non-nil fields of upd
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*entities.User, error) {
	if err := validateRequest(upd); err != nil {
		return nil, err
	}
	if upd.Email != nil {
		if err := uc.checkEmailFree(ctx, *upd.Email, id); err != nil {
			return nil, err
		}
	}
	patch, err := toPatch(upd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user update: %w", err)
	}
	if err := uc.patch(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.GetUser(ctx, id)
}

// ActivateUser restores access. It needs no confirmation.
func (uc *UserUseCase) ActivateUser(ctx context.Context, id string) error {
	if err := uc.patch(ctx, id, map[string]any{"is_active": true}); err != nil {
		return err
	}
	log.Printf("Activated user %s", id)
	return nil
}

// DeactivateUser suspends access once confirmed
func (uc *UserUseCase) DeactivateUser(ctx context.Context, id string, confirmed bool) error {
	if _, err := uc.GetUser(ctx, id); err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("deactivate user %q: %w", id, ErrConfirmationRequired)
	}
	if err := uc.patch(ctx, id, map[string]any{"is_active": false}); err != nil {
		return err
	}
	log.Printf("Deactivated user %s", id)
	return nil
}

// DeleteUser removes an account permanently once confirmed
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string, confirmed bool) error {
	if _, err := uc.GetUser(ctx, id); err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("delete user %q: %w", id, ErrConfirmationRequired)
	}
	removed, err := uc.repo.Users.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !removed {
		return fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	log.Printf("Deleted user %s", id)
	return nil
}

func (uc *UserUseCase) patch(ctx context.Context, id string, patch map[string]any) error {
	found, err := uc.repo.Users.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return nil
}

func (uc *UserUseCase) checkEmailFree(ctx context.Context, email, exceptID string) error {
	users, err := uc.repo.Users.Read(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return fmt.Errorf("%w: email %s is already registered", ErrValidation, email)
		}
	}
	return nil
}
