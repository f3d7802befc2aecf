package repository

import (
	"context"
	"log"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/fixtures"
	"github.com/abelzeko/mionjo/internal/storage"
)

// Storage keys of the collections
const (
	KeyWaterPoints    = "mionjo_water_points"
	KeyUsers          = "mionjo_users"
	KeyReports        = "mionjo_reports"
	KeyMaintenance    = "mionjo_maintenance"
	KeyNotifications  = "mionjo_notifications"
	KeyPredictions    = "mionjo_predictions"
	KeyCommunityPosts = "mionjo_community_posts"
	KeySession        = "mionjo_session"
)

// Repository groups every collection of the application over one store
type Repository struct {
	store storage.Store

	WaterPoints   *Collection[entities.WaterPoint]
	Users         *Collection[entities.User]
	Reports       *Collection[entities.FieldReport]
	Maintenance   *Collection[entities.MaintenanceRecord]
	Notifications *Collection[entities.Notification]
	Predictions   *Collection[entities.AIPrediction]
	Posts         *Collection[entities.CommunityPost]
}

// New creates the repository. Collections missing from the store are seeded from
// ds; a nil ds seeds every collection empty.
func New(store storage.Store, ds *fixtures.Dataset) *Repository {
	if ds == nil {
		ds = &fixtures.Dataset{}
	}
	return &Repository{
		store:         store,
		WaterPoints:   NewCollection(store, KeyWaterPoints, clone(ds.WaterPoints)),
		Users:         NewCollection(store, KeyUsers, clone(ds.Users)),
		Reports:       NewCollection(store, KeyReports, clone(ds.FieldReports)),
		Maintenance:   NewCollection(store, KeyMaintenance, clone(ds.MaintenanceRecords)),
		Notifications: NewCollection[entities.Notification](store, KeyNotifications, nil),
		Predictions:   NewCollection(store, KeyPredictions, clone(ds.Predictions)),
		Posts:         NewCollection(store, KeyCommunityPosts, clone(ds.CommunityPosts)),
	}
}

// Seed reads every collection once so that missing ones are written from fixtures
func (r *Repository) Seed(ctx context.Context) error {
	log.Println("Seeding collections...")
	steps := []func(context.Context) error{
		func(ctx context.Context) error { _, err := r.WaterPoints.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Users.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Reports.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Maintenance.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Notifications.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Predictions.Read(ctx); return err },
		func(ctx context.Context) error { _, err := r.Posts.Read(ctx); return err },
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StoredKeys lists the keys present in the store
func (r *Repository) StoredKeys(ctx context.Context) ([]string, error) {
	return r.store.Keys(ctx)
}

// Close closes the underlying store
func (r *Repository) Close() error {
	return r.store.Close()
}

func clone[T any](items []T) func() []T {
	return func() []T {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
}
