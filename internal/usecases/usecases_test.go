package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/fixtures"
	"github.com/abelzeko/mionjo/internal/integration"
	"github.com/abelzeko/mionjo/internal/integration/openai"
	"github.com/abelzeko/mionjo/internal/notify"
	"github.com/abelzeko/mionjo/internal/prediction"
	"github.com/abelzeko/mionjo/internal/repository"
	"github.com/abelzeko/mionjo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func counterIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestServices(t *testing.T, deps Dependencies) (*Services, *repository.Repository) {
	t.Helper()
	repo := repository.New(storage.NewMemoryStore(), fixtures.MustLoad())
	require.NoError(t, repo.Seed(context.Background()))
	if deps.Now == nil {
		deps.Now = func() time.Time { return fixedNow }
	}
	if deps.NewID == nil {
		deps.NewID = counterIDs("id-")
	}
	return NewServices(repo, deps), repo
}

func TestListWaterPointsFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	all, err := svc.WaterPoints.ListWaterPoints(ctx, WaterPointFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	failed, err := svc.WaterPoints.ListWaterPoints(ctx, WaterPointFilter{Status: entities.StatusFailed})
	require.NoError(t, err)
	assert.Len(t, failed, 2)

	boreholes, err := svc.WaterPoints.ListWaterPoints(ctx, WaterPointFilter{Type: entities.WaterPointBorehole, Status: entities.StatusFailed})
	require.NoError(t, err)
	require.Len(t, boreholes, 1)
	assert.Equal(t, "wp-5", boreholes[0].ID)

	// commune match, case-insensitive
	bySearch, err := svc.WaterPoints.ListWaterPoints(ctx, WaterPointFilter{Search: "TSIHOMBE"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "wp-2", bySearch[0].ID)
}

func TestGetWaterPointNotFound(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	_, err := svc.WaterPoints.GetWaterPoint(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func validWaterPointRequest() WaterPointRequest {
	return WaterPointRequest{
		Name:          "Réservoir Faux-Cap",
		Type:          entities.WaterPointReservoir,
		Status:        entities.StatusUnderConstruction,
		Latitude:      -25.56,
		Longitude:     45.53,
		Region:        "Androy",
		Commune:       "Faux-Cap",
		DailyCapacity: 8000,
	}
}

func TestCreateWaterPointPrependsWithDefaults(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	wp, err := svc.WaterPoints.CreateWaterPoint(ctx, validWaterPointRequest())
	require.NoError(t, err)
	assert.Equal(t, "id-1", wp.ID)
	assert.Equal(t, entities.QualityGood, wp.WaterQuality)
	assert.Equal(t, 400, wp.PopulationServed)

	points, err := repo.WaterPoints.Read(ctx)
	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, wp, points[0])
}

func TestCreateWaterPointValidation(t *testing.T) {
	svc, repo := newTestServices(t, Dependencies{})

	req := validWaterPointRequest()
	req.Type = "citerne"
	req.Latitude = -120
	_, err := svc.WaterPoints.CreateWaterPoint(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "latitude")

	points, err := repo.WaterPoints.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 5)
}

func TestReplaceWaterPoint(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	req := validWaterPointRequest()
	req.Name = "Source Beloha Est"
	req.Status = entities.StatusActive
	_, err := svc.WaterPoints.ReplaceWaterPoint(ctx, "wp-3", req)
	require.NoError(t, err)

	wp, err := svc.WaterPoints.GetWaterPoint(ctx, "wp-3")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusActive, wp.Status)
	assert.Equal(t, "Faux-Cap", wp.Commune)
	assert.Empty(t, wp.LastMaintenance, "replacement overwrites every field")

	_, err = svc.WaterPoints.ReplaceWaterPoint(ctx, "missing", req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportAndExportCSV(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	input := "nom,commune,capacity\nPuits Marovato,Marovato,800\n,Nowhere,10\n"
	result, err := svc.WaterPoints.ImportCSV(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	var out bytes.Buffer
	require.NoError(t, svc.WaterPoints.ExportCSV(ctx, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[1], `"Puits Marovato"`), "imported points are prepended")
}

func TestImportCSVKeepsGoodRowsNextToNonFiniteOnes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	before, err := repo.WaterPoints.Read(ctx)
	require.NoError(t, err)

	input := "nom,latitude,capacity\nForage Bon,-25.1,2000\nForage NaN,NaN,2000\nForage Big,-25.1,1e30\n"
	result, err := svc.WaterPoints.ImportCSV(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	after, err := repo.WaterPoints.Read(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "Forage Bon", after[0].Name)
}

type stubRegister struct {
	points []entities.WaterPoint
	err    error
}

func (s stubRegister) FetchRegister(_ context.Context, _ func() string) (*integration.RegisterSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &integration.RegisterSnapshot{Points: s.points, Rows: len(s.points) + 1, Skipped: 1}, nil
}

func TestSyncRegisterSkipsKnownNames(t *testing.T) {
	ctx := context.Background()
	register := stubRegister{points: []entities.WaterPoint{
		{ID: "r-1", Name: "forage ambovombe centre"},
		{ID: "r-2", Name: "Puits Marovato"},
		{ID: "r-3", Name: "Puits Marovato"},
	}}
	svc, repo := newTestServices(t, Dependencies{Register: register})

	result, err := svc.WaterPoints.SyncRegister(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Fetched: 3, Added: 1, Duplicates: 2, Skipped: 1}, *result)

	points, err := repo.WaterPoints.Read(ctx)
	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, "r-2", points[0].ID)
}

func TestSyncRegisterErrors(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})
	_, err := svc.WaterPoints.SyncRegister(context.Background())
	assert.Error(t, err)

	svc, _ = newTestServices(t, Dependencies{Register: stubRegister{err: errors.New("boom")}})
	_, err = svc.WaterPoints.SyncRegister(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestListReportsResolvesNames(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	require.NoError(t, repo.Reports.Add(ctx, entities.FieldReport{ID: "fr-x", WaterPointID: "gone", Status: entities.ReportNew}))

	views, err := svc.Reports.ListReports(ctx, entities.ReportNew)
	require.NoError(t, err)
	require.Len(t, views, 4)
	assert.Equal(t, entities.UnknownName, views[0].WaterPointName)
	assert.Equal(t, "Source Beloha Est", views[1].WaterPointName)
}

func TestCreateCriticalReportNotifies(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	result, err := svc.Reports.CreateReport(ctx, ReportRequest{
		WaterPointID: "wp-1",
		ReportType:   entities.ReportFailure,
		Priority:     entities.PriorityCritical,
		Title:        "Pompe cassée",
		Description:  "Plus une goutte.",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ReportNew, result.Report.Status)
	assert.Equal(t, "2024-01-10 09:30", result.Report.CreatedAt)
	require.NotNil(t, result.Notification)
	assert.Contains(t, result.Notification.Content, "Forage Ambovombe Centre")
	assert.Contains(t, result.Notification.Content, "5000")

	reports, err := repo.Reports.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Report, reports[0])

	notifications, err := repo.Notifications.Read(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, *result.Notification, notifications[0])
}

func TestCreateLowPriorityReportDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	result, err := svc.Reports.CreateReport(ctx, ReportRequest{
		WaterPointID: "wp-1",
		ReportType:   entities.ReportLeak,
		Priority:     entities.PriorityLow,
		Title:        "Petite fuite",
		Description:  "Robinet qui goutte.",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Notification)

	notifications, err := repo.Notifications.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCreateReportWritesNothingWhenWaterPointsAreUnreadable(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := repository.New(store, fixtures.MustLoad())
	require.NoError(t, repo.Seed(ctx))
	svc := NewServices(repo, Dependencies{Now: func() time.Time { return fixedNow }, NewID: counterIDs("id-")})

	before, err := repo.Reports.Read(ctx)
	require.NoError(t, err)
	beforeMaintenance, err := repo.Maintenance.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repository.KeyWaterPoints, "{not json"))

	_, err = svc.Reports.CreateReport(ctx, ReportRequest{
		WaterPointID: "wp-1",
		ReportType:   entities.ReportFailure,
		Priority:     entities.PriorityCritical,
		Title:        "Pompe cassée",
		Description:  "Plus une goutte.",
	})
	assert.ErrorIs(t, err, repository.ErrCorruptCollection)

	_, err = svc.Maintenance.ScheduleMaintenance(ctx, MaintenanceRequest{
		WaterPointID:    "wp-1",
		MaintenanceType: entities.MaintenanceCorrective,
		ScheduledDate:   "2024-03-01",
		Priority:        entities.PriorityHigh,
	})
	assert.ErrorIs(t, err, repository.ErrCorruptCollection)

	after, err := repo.Reports.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	afterMaintenance, err := repo.Maintenance.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, beforeMaintenance, afterMaintenance)

	notifications, err := repo.Notifications.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCreateReportValidation(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	_, err := svc.Reports.CreateReport(context.Background(), ReportRequest{WaterPointID: "wp-1", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScheduleMaintenanceAlwaysNotifies(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	result, err := svc.Maintenance.ScheduleMaintenance(ctx, MaintenanceRequest{
		WaterPointID:    "wp-4",
		MaintenanceType: entities.MaintenancePreventive,
		ScheduledDate:   "2024-03-01",
		Priority:        entities.PriorityLow,
		Description:     "Graissage",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.MaintenancePlanned, result.Record.Status)
	assert.Equal(t, notify.TechnicianTeam, result.Notification.Recipient)
	assert.Equal(t, "NOUVELLE MAINTENANCE: Borne Fontaine Amboasary (préventive)", result.Notification.Subject)

	records, err := repo.Maintenance.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Record, records[0])

	unread, err := svc.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestScheduleMaintenanceRejectsBadDate(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	_, err := svc.Maintenance.ScheduleMaintenance(context.Background(), MaintenanceRequest{
		WaterPointID:    "wp-4",
		MaintenanceType: entities.MaintenanceCorrective,
		ScheduledDate:   "01/03/2024",
		Priority:        entities.PriorityNormal,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpcomingMaintenanceSortedByDate(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	upcoming, err := svc.Maintenance.Upcoming(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "mr-3", upcoming[0].ID)
	assert.Equal(t, "mr-2", upcoming[1].ID)
	assert.Equal(t, "Source Beloha Est", upcoming[0].WaterPointName)
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	user, err := svc.Users.CreateUser(ctx, UserRequest{
		FullName:     "Rasoa Marie",
		Email:        "rasoa@ong-rano.mg",
		Role:         entities.RoleNGO,
		Organization: "ONG Rano",
		Region:       "Anosy",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = svc.Users.CreateUser(ctx, UserRequest{FullName: "Doublon", Email: "RASOA@ong-rano.mg", Role: entities.RoleNGO})
	assert.ErrorIs(t, err, ErrValidation)

	byOrg, err := svc.Users.ListUsers(ctx, UserFilter{Search: "rano"})
	require.NoError(t, err)
	require.Len(t, byOrg, 1)

	admins, err := svc.Users.ListUsers(ctx, UserFilter{Role: entities.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "1", admins[0].ID)

	region := "Androy"
	updated, err := svc.Users.UpdateUser(ctx, user.ID, UserUpdate{Region: &region})
	require.NoError(t, err)
	assert.Equal(t, "Androy", updated.Region)
	assert.Equal(t, "Rasoa Marie", updated.FullName)

	err = svc.Users.DeactivateUser(ctx, user.ID, false)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	got, err := svc.Users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	require.NoError(t, svc.Users.DeactivateUser(ctx, user.ID, true))
	got, err = svc.Users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.Users.ActivateUser(ctx, user.ID))
	got, err = svc.Users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	require.ErrorIs(t, svc.Users.DeleteUser(ctx, user.ID, false), ErrConfirmationRequired)
	require.NoError(t, svc.Users.DeleteUser(ctx, user.ID, true))
	_, err = svc.Users.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	assert.ErrorIs(t, svc.Users.ActivateUser(ctx, "nobody"), ErrNotFound)
	assert.ErrorIs(t, svc.Users.DeactivateUser(ctx, "nobody", true), ErrNotFound)
	assert.ErrorIs(t, svc.Users.DeleteUser(ctx, "nobody", false), ErrNotFound)
}

func TestNotificationsMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{})

	require.NoError(t, repo.Notifications.Write(ctx, []entities.Notification{
		{ID: "n-1"}, {ID: "n-2"}, {ID: "n-3", IsRead: true},
	}))

	unread, err := svc.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	require.NoError(t, svc.Notifications.MarkRead(ctx, "n-1"))
	assert.ErrorIs(t, svc.Notifications.MarkRead(ctx, "n-9"), ErrNotFound)

	unread, err = svc.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	n, err := svc.Notifications.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	unread, err = svc.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestListPredictionsSortedByRisk(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	preds, err := svc.Predictions.ListPredictions(context.Background())
	require.NoError(t, err)
	require.Len(t, preds, 3)
	assert.Equal(t, []string{"ai-3", "ai-2", "ai-1"}, []string{preds[0].ID, preds[1].ID, preds[2].ID})
	assert.Equal(t, "Puits Tsihombe Nord", preds[0].WaterPointName)
}

type failingPredictor struct{}

func (failingPredictor) Predict(context.Context, []prediction.Input) ([]entities.AIPrediction, error) {
	return nil, errors.New("quota exceeded")
}

func TestRefreshPredictionsFallsBackToHeuristic(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestServices(t, Dependencies{Predictor: failingPredictor{}})

	n, err := svc.Predictions.RefreshPredictions(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)

	stored, err := repo.Predictions.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, n)

	preds, err := svc.Predictions.ListPredictions(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.RiskCritical, preds[0].RiskLevel)
	for _, p := range preds {
		if p.WaterPointID == "wp-3" {
			assert.Equal(t, entities.RiskCritical, p.RiskLevel)
			assert.Equal(t, entities.PredictionWaterQualityRisk, p.PredictionType)
		}
	}
}

func TestListPostsResolvesAuthors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	posts, err := svc.Community.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, entities.UnknownName, posts[0].AuthorName)

	questions, err := svc.Community.ListPosts(ctx, entities.PostQuestion)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestDashboardSummary(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	s, err := svc.Dashboard.Summary(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, s.TotalWaterPoints)
	assert.Equal(t, 2, s.ByStatus[entities.StatusActive])
	assert.Equal(t, 2, s.ByStatus[entities.StatusFailed])
	assert.Equal(t, 40, s.ActivePercent)
	assert.Equal(t, 8700, s.PopulationServed)

	require.Len(t, s.UrgentReports, 5)
	assert.Equal(t, "fr-1", s.UrgentReports[0].ID)
	assert.Equal(t, "fr-3", s.UrgentReports[1].ID)
	assert.Equal(t, "fr-4", s.UrgentReports[2].ID)
	assert.Equal(t, "fr-5", s.UrgentReports[4].ID)

	require.Len(t, s.UpcomingMaintenance, 2)
	require.Len(t, s.TopRisks, 3)
	assert.Equal(t, entities.RiskHigh, s.TopRisks[0].RiskLevel)

	filtered, err := svc.Dashboard.Summary(context.Background(), DashboardFilter{Type: entities.WaterPointBorehole})
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.TotalWaterPoints)
	assert.Equal(t, 5700, filtered.PopulationServed)
	assert.Equal(t, 50, filtered.ActivePercent)
	assert.Len(t, filtered.UrgentReports, 5, "lists are not filtered")
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Dependencies{})

	in, err := svc.Session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, svc.Session.Login(ctx))
	in, err = svc.Session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, svc.Session.Logout(ctx))
	in, err = svc.Session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)
}

type stubAgent struct {
	resp  *openai.AgentResponse
	err   error
	names []string
}

func (s *stubAgent) InterpretUserQuery(_ context.Context, _ string, known []string) (*openai.AgentResponse, error) {
	s.names = known
	return s.resp, s.err
}

func TestQueryFindsWaterPoint(t *testing.T) {
	agent := &stubAgent{resp: &openai.AgentResponse{
		CommandName:    openai.CommandGetWaterPoint,
		WaterPointName: "Source Beloha Est",
		UserMessage:    "Voici le point demandé.",
	}}
	svc, _ := newTestServices(t, Dependencies{Agent: agent})

	msg, err := svc.Query.HandleNaturalLanguageQuery(context.Background(), "et la source de Beloha ?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "Voici le point demandé.\n\n"))
	assert.Contains(t, msg, "Source Beloha Est (wp-3)")
	assert.Len(t, agent.names, 5)
}

func TestQueryUnknownWaterPointAndGeneral(t *testing.T) {
	ctx := context.Background()
	agent := &stubAgent{resp: &openai.AgentResponse{CommandName: openai.CommandGetWaterPoint, WaterPointName: "Lac Imaginaire"}}
	svc, _ := newTestServices(t, Dependencies{Agent: agent})

	msg, err := svc.Query.HandleNaturalLanguageQuery(ctx, "lac ?")
	require.NoError(t, err)
	assert.Contains(t, msg, "Lac Imaginaire")
	assert.Contains(t, msg, "/points")

	agent.resp = &openai.AgentResponse{CommandName: openai.CommandGeneralQuery, UserMessage: "Salama !"}
	msg, err = svc.Query.HandleNaturalLanguageQuery(ctx, "salama")
	require.NoError(t, err)
	assert.Equal(t, "Salama !", msg)

	agent.err = errors.New("down")
	msg, err = svc.Query.HandleNaturalLanguageQuery(ctx, "salama")
	require.NoError(t, err)
	assert.Contains(t, msg, "/help")
}

func TestQueryWithoutAgent(t *testing.T) {
	svc, _ := newTestServices(t, Dependencies{})

	msg, err := svc.Query.HandleNaturalLanguageQuery(context.Background(), "bonjour")
	require.NoError(t, err)
	assert.Contains(t, msg, "/help")
}
