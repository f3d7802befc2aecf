package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds CSV imports
const maxUploadSize = 10 << 20

// HTTPServer exposes the use cases as a JSON API
type HTTPServer struct {
	engine   *gin.Engine
	services *usecases.Services
}

// NewHTTPServer creates the router with every route registered
func NewHTTPServer(services *usecases.Services) *HTTPServer {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	s := &HTTPServer{engine: r, services: services}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		api.GET("/water-points", s.listWaterPoints)
		api.POST("/water-points", s.createWaterPoint)
		api.GET("/water-points/:id", s.getWaterPoint)
		api.PUT("/water-points/:id", s.replaceWaterPoint)

		api.GET("/inventory/export", s.exportCSV)
		api.POST("/inventory/import", s.importCSV)
		api.POST("/inventory/sync", s.syncRegister)

		api.GET("/reports", s.listReports)
		api.POST("/reports", s.createReport)

		api.GET("/maintenance", s.listMaintenance)
		api.POST("/maintenance", s.scheduleMaintenance)

		api.GET("/users", s.listUsers)
		api.POST("/users", s.createUser)
		api.GET("/users/:id", s.getUser)
		api.PATCH("/users/:id", s.updateUser)
		api.DELETE("/users/:id", s.deleteUser)
		api.POST("/users/:id/activate", s.activateUser)
		api.POST("/users/:id/deactivate", s.deactivateUser)

		api.GET("/notifications", s.listNotifications)
		api.PATCH("/notifications", s.markAllRead)
		api.PATCH("/notifications/:id", s.markRead)

		api.GET("/predictions", s.listPredictions)
		api.POST("/predictions/refresh", s.refreshPredictions)

		api.GET("/community", s.listPosts)
		api.GET("/dashboard", s.dashboard)

		api.GET("/session", s.getSession)
		api.POST("/session", s.login)
		api.DELETE("/session", s.logout)

		api.POST("/query", s.query)
	}
	return s
}

// Handler returns the HTTP handler of the server
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *HTTPServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down HTTP API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// fail writes err with the status matching its kind
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecases.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecases.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecases.ErrConfirmationRequired):
		status = http.StatusConflict
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

func waterPointFilter(c *gin.Context) usecases.WaterPointFilter {
	return usecases.WaterPointFilter{
		Search: c.Query("search"),
		Status: entities.WaterPointStatus(c.Query("status")),
		Type:   entities.WaterPointType(c.Query("type")),
	}
}

func (s *HTTPServer) listWaterPoints(c *gin.Context) {
	points, err := s.services.WaterPoints.ListWaterPoints(c.Request.Context(), waterPointFilter(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points})
}

func (s *HTTPServer) getWaterPoint(c *gin.Context) {
	wp, err := s.services.WaterPoints.GetWaterPoint(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wp})
}

func (s *HTTPServer) createWaterPoint(c *gin.Context) {
	var req usecases.WaterPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	wp, err := s.services.WaterPoints.CreateWaterPoint(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": wp})
}

func (s *HTTPServer) replaceWaterPoint(c *gin.Context) {
	var req usecases.WaterPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	wp, err := s.services.WaterPoints.ReplaceWaterPoint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wp})
}

func (s *HTTPServer) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="mionjo_points_eau.csv"`)
	if err := s.services.WaterPoints.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		fail(c, err)
	}
}

// importCSV accepts either a multipart "file" field or a raw CSV body
func (s *HTTPServer) importCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	body := c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			badRequest(c, err)
			return
		}
		defer f.Close()
		body = f
	}

	result, err := s.services.WaterPoints.ImportCSV(c.Request.Context(), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": result.Imported, "skipped": result.Skipped, "data": result.Points})
}

func (s *HTTPServer) syncRegister(c *gin.Context) {
	result, err := s.services.WaterPoints.SyncRegister(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *HTTPServer) listReports(c *gin.Context) {
	reports, err := s.services.Reports.ListReports(c.Request.Context(), entities.ReportStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *HTTPServer) createReport(c *gin.Context) {
	var req usecases.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.services.Reports.CreateReport(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *HTTPServer) listMaintenance(c *gin.Context) {
	records, err := s.services.Maintenance.ListMaintenance(c.Request.Context(), entities.MaintenanceStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *HTTPServer) scheduleMaintenance(c *gin.Context) {
	var req usecases.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.services.Maintenance.ScheduleMaintenance(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	users, err := s.services.Users.ListUsers(c.Request.Context(), usecases.UserFilter{
		Search: c.Query("search"),
		Role:   entities.UserRole(c.Query("role")),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (s *HTTPServer) getUser(c *gin.Context) {
	user, err := s.services.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *HTTPServer) createUser(c *gin.Context) {
	var req usecases.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := s.services.Users.CreateUser(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (s *HTTPServer) updateUser(c *gin.Context) {
	var upd usecases.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	user, err := s.services.Users.UpdateUser(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *HTTPServer) activateUser(c *gin.Context) {
	if err := s.services.Users.ActivateUser(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "activated"})
}

func (s *HTTPServer) deactivateUser(c *gin.Context) {
	if err := s.services.Users.DeactivateUser(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (s *HTTPServer) deleteUser(c *gin.Context) {
	if err := s.services.Users.DeleteUser(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *HTTPServer) listNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := s.services.Notifications.ListNotifications(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	unread, err := s.services.Notifications.UnreadCount(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "unread": unread})
}

func (s *HTTPServer) markRead(c *gin.Context) {
	if err := s.services.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (s *HTTPServer) markAllRead(c *gin.Context) {
	n, err := s.services.Notifications.MarkAllRead(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (s *HTTPServer) listPredictions(c *gin.Context) {
	preds, err := s.services.Predictions.ListPredictions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": preds})
}

func (s *HTTPServer) refreshPredictions(c *gin.Context) {
	n, err := s.services.Predictions.RefreshPredictions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (s *HTTPServer) listPosts(c *gin.Context) {
	posts, err := s.services.Community.ListPosts(c.Request.Context(), entities.PostType(c.Query("type")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (s *HTTPServer) dashboard(c *gin.Context) {
	summary, err := s.services.Dashboard.Summary(c.Request.Context(), waterPointFilter(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *HTTPServer) getSession(c *gin.Context) {
	in, err := s.services.Session.IsLoggedIn(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": in})
}

func (s *HTTPServer) login(c *gin.Context) {
	if err := s.services.Session.Login(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": true})
}

func (s *HTTPServer) logout(c *gin.Context) {
	if err := s.services.Session.Logout(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": false})
}

type queryRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *HTTPServer) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	reply, err := s.services.Query.HandleNaturalLanguageQuery(c.Request.Context(), req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
