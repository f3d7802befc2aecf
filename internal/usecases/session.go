package usecases

import (
	"context"
	"log"

	"github.com/abelzeko/mionjo/internal/repository"
)

// SessionUseCase keeps the logged-in flag. Credentials are not checked.
type SessionUseCase struct {
	repo *repository.Repository
}

// NewSessionUseCase creates a new session use case
func NewSessionUseCase(repo *repository.Repository) *SessionUseCase {
	return &SessionUseCase{repo: repo}
}

// Login opens the session
func (uc *SessionUseCase) Login(ctx context.Context) error {
	log.Println("Opening session")
	return uc.repo.SetSession(ctx)
}

// Logout closes the session
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	log.Println("Closing session")
	return uc.repo.ClearSession(ctx)
}

// IsLoggedIn reports whether a session is open
func (uc *SessionUseCase) IsLoggedIn(ctx context.Context) (bool, error) {
	return uc.repo.HasSession(ctx)
}
