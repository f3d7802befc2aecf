package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abelzeko/mionjo/internal/fixtures"
	"github.com/abelzeko/mionjo/internal/repository"
	"github.com/abelzeko/mionjo/internal/storage"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*usecases.Services, *repository.Repository) {
	t.Helper()
	repo := repository.New(storage.NewMemoryStore(), fixtures.MustLoad())
	require.NoError(t, repo.Seed(context.Background()))

	n := 0
	svc := usecases.NewServices(repo, usecases.Dependencies{
		Now: func() time.Time { return time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	return svc, repo
}
