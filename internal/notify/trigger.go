// Package notify derives the simulated email notifications raised by field
// reports and maintenance scheduling.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/google/uuid"
)

// Distribution addresses
const (
	TechnicianTeam = "technicien-equipe-A@mionjo.mg"
	NGOPartners    = "ong-partenaires@mionjo.mg"
	Administrators = "admin@mionjo.mg"
)

// NotSpecified replaces water point details that cannot be resolved
const NotSpecified = "Non spécifié"

// TimestampLayout is the format of Notification.Timestamp
const TimestampLayout = "2006-01-02 15:04"

// ReportRecipients receives alerts raised by field reports
var ReportRecipients = []string{TechnicianTeam, NGOPartners, Administrators}

// ForFieldReport builds the alert for a newly created report. Only haute and
// critique reports produce one. wp may be nil when the referenced water point
// does not exist.
func ForFieldReport(report entities.FieldReport, wp *entities.WaterPoint, now time.Time) (entities.Notification, bool) {
	if !report.Priority.IsUrgent() {
		return entities.Notification{}, false
	}

	name, location, capacity := NotSpecified, NotSpecified, NotSpecified
	if wp != nil {
		name = wp.Name
		location = joinNonEmpty(", ", wp.Village, wp.Commune, wp.Region)
		if location == "" {
			location = NotSpecified
		}
		capacity = strconv.Itoa(wp.DailyCapacity) + " L/j"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Un signalement de type %s a été enregistré", report.ReportType)
	if report.CreatedAt != "" {
		fmt.Fprintf(&body, " le %s", report.CreatedAt)
	}
	fmt.Fprintf(&body, ". Titre: %s. Description: %s. ", report.Title, report.Description)
	fmt.Fprintf(&body, "Point d'eau: %s. Localisation: %s. Capacité: %s.", name, location, capacity)

	return newNotification(
		strings.Join(ReportRecipients, ", "),
		fmt.Sprintf("ALERTE %s: %s", strings.ToUpper(string(report.Priority)), report.Title),
		body.String(),
		report.Priority,
		now,
	), true
}

// ForMaintenance builds the notification sent to technicians when an
// intervention is scheduled. It is emitted whatever the priority.
func ForMaintenance(record entities.MaintenanceRecord, wp *entities.WaterPoint, now time.Time) entities.Notification {
	return newNotification(
		TechnicianTeam,
		fmt.Sprintf("NOUVELLE MAINTENANCE: %s (%s)", entities.NameOf(wp), record.MaintenanceType),
		fmt.Sprintf("Une intervention de type %s a été planifiée pour le %s. Priorité: %s. Description: %s.",
			record.MaintenanceType, record.ScheduledDate, record.Priority, record.Description),
		record.Priority,
		now,
	)
}

func newNotification(recipient, subject, content string, priority entities.Priority, now time.Time) entities.Notification {
	return entities.Notification{
		ID:        "notif-" + uuid.NewString(),
		Recipient: recipient,
		Subject:   subject,
		Content:   content,
		Type:      entities.ChannelEmail,
		Priority:  priority,
		Timestamp: now.Format(TimestampLayout),
		IsRead:    false,
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
