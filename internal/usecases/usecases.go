// Package usecases contains the application's business logic
package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/abelzeko/mionjo/internal/integration/openai"
	"github.com/abelzeko/mionjo/internal/prediction"
	"github.com/abelzeko/mionjo/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Errors surfaced to the front ends
var (
	ErrValidation           = errors.New("invalid request")
	ErrNotFound             = errors.New("not found")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Dependencies are the optional collaborators of the use cases
type Dependencies struct {
	Register  RegisterSource       // nil disables register synchronization
	Predictor prediction.Predictor // nil uses the heuristic
	Agent     openai.QueryAgent    // nil disables free-text queries
	Now       func() time.Time
	NewID     func() string
}

// Services groups the use cases of the application
type Services struct {
	WaterPoints   *WaterPointUseCase
	Reports       *ReportUseCase
	Maintenance   *MaintenanceUseCase
	Users         *UserUseCase
	Notifications *NotificationUseCase
	Predictions   *PredictionUseCase
	Community     *CommunityUseCase
	Dashboard     *DashboardUseCase
	Session       *SessionUseCase
	Query         *QueryUseCase
}

// NewServices wires every use case over the repository
func NewServices(repo *repository.Repository, deps Dependencies) *Services {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	waterPoints := NewWaterPointUseCase(repo, deps.Register, deps.NewID)
	reports := NewReportUseCase(repo, deps.Now, deps.NewID)
	maintenance := NewMaintenanceUseCase(repo, deps.Now, deps.NewID)
	notifications := NewNotificationUseCase(repo)
	predictions := NewPredictionUseCase(repo, deps.Predictor, deps.Now)

	return &Services{
		WaterPoints:   waterPoints,
		Reports:       reports,
		Maintenance:   maintenance,
		Users:         NewUserUseCase(repo, deps.NewID),
		Notifications: notifications,
		Predictions:   predictions,
		Community:     NewCommunityUseCase(repo),
		Dashboard:     NewDashboardUseCase(waterPoints, reports, maintenance, predictions, notifications),
		Session:       NewSessionUseCase(repo),
		Query:         NewQueryUseCase(waterPoints, deps.Agent),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks req against its validate tags and wraps failures in ErrValidation
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// toPatch turns a value into the JSON field map expected by Collection.Update
func toPatch(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var patch map[string]any
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, err
	}
	return patch, nil
}
