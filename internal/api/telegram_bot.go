// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/usecases"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// listLimit caps the number of lines of a list reply
	listLimit = 20
	// excerptLength caps free-text fields quoted in list lines, in runes
	excerptLength = 120
	// maxMessageLength is the Telegram limit for one message, in runes
	maxMessageLength = 4096
)

const helpText = "Commandes disponibles:\n" +
	"/points [recherche] - Lister les points d'eau\n" +
	"/point <id> - Détails d'un point d'eau\n" +
	"/reports [statut] - Signalements (nouveau, en_cours, résolu)\n" +
	"/report <point> <type> <priorité> <titre> | <description> - Signaler un incident\n" +
	"/maintenance [statut] - Interventions (planifié, en_cours, terminé)\n" +
	"/schedule <point> <type> <AAAA-MM-JJ> <priorité> <description> - Planifier une intervention\n" +
	"/notifications - Journal des notifications\n" +
	"/read <id> - Marquer une notification comme lue\n" +
	"/readall - Tout marquer comme lu\n" +
	"/predictions - Risques prédits\n" +
	"/dashboard - Tableau de bord\n" +
	"/community - Fil communautaire\n" +
	"/help - Afficher cette aide\n\n" +
	"Vous pouvez aussi poser une question en texte libre."

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	services *usecases.Services
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(botToken string, services *usecases.Services) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramBot{
		bot:      bot,
		services: services,
	}, nil
}

// Start begins listening for and handling Telegram messages until ctx is done
func (t *TelegramBot) Start(ctx context.Context) {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping Telegram bot...")
			t.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}

			log.Printf("Received message from %s (ID: %d): %s",
				update.Message.From.UserName,
				update.Message.From.ID,
				update.Message.Text)

			t.handleMessage(ctx, update)
		}
	}
}

// handleMessage processes a Telegram message update
func (t *TelegramBot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, truncate(t.Reply(ctx, update.Message), maxMessageLength))

	log.Printf("Sending response to user %s", update.Message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// Reply computes the answer to a message
func (t *TelegramBot) Reply(ctx context.Context, message *tgbotapi.Message) string {
	if message.IsCommand() {
		return t.handleCommand(ctx, message.Command(), strings.TrimSpace(message.CommandArguments()))
	}
	return t.handleNonCommand(ctx, message.Text)
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(ctx context.Context, command, args string) string {
	log.Printf("Handling /%s command with args '%s'", command, args)

	switch command {
	case "start":
		return "Bienvenue sur MIONJO, le suivi des points d'eau du Grand Sud. Tapez /points pour la liste ou /help pour l'aide."
	case "help":
		return helpText
	case "points":
		return t.handlePoints(ctx, args)
	case "point":
		return t.handlePoint(ctx, args)
	case "reports":
		return t.handleReports(ctx, args)
	case "report":
		return t.handleNewReport(ctx, args)
	case "maintenance":
		return t.handleMaintenance(ctx, args)
	case "schedule":
		return t.handleSchedule(ctx, args)
	case "notifications":
		return t.handleNotifications(ctx)
	case "read":
		return t.handleRead(ctx, args)
	case "readall":
		return t.handleReadAll(ctx)
	case "predictions":
		return t.handlePredictions(ctx)
	case "dashboard":
		return t.handleDashboard(ctx)
	case "community":
		return t.handleCommunity(ctx)
	default:
		log.Printf("Received unknown command /%s", command)
		return "Commande inconnue. Tapez /help pour la liste des commandes."
	}
}

func (t *TelegramBot) handlePoints(ctx context.Context, search string) string {
	points, err := t.services.WaterPoints.ListWaterPoints(ctx, usecases.WaterPointFilter{Search: search})
	if err != nil {
		return errorReply(err)
	}
	if len(points) == 0 {
		return fmt.Sprintf("Aucun point d'eau ne correspond à '%s'.", search)
	}
	lines := make([]string, 0, len(points))
	for _, wp := range points {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s, %s", wp.Name, wp.ID, wp.Status, wp.Commune))
	}
	return "Points d'eau:\n\n" + bulletList(lines) + "\nTapez /point <id> pour le détail."
}

func (t *TelegramBot) handlePoint(ctx context.Context, id string) string {
	if id == "" {
		return "Précisez l'identifiant. Exemple: /point wp-1"
	}
	wp, err := t.services.WaterPoints.GetWaterPoint(ctx, id)
	if err != nil {
		return errorReply(err)
	}
	return usecases.FormatWaterPoint(*wp)
}

func (t *TelegramBot) handleReports(ctx context.Context, status string) string {
	reports, err := t.services.Reports.ListReports(ctx, entities.ReportStatus(status))
	if err != nil {
		return errorReply(err)
	}
	if len(reports) == 0 {
		return "Aucun signalement."
	}
	lines := make([]string, 0, len(reports))
	for _, r := range reports {
		lines = append(lines, usecases.FormatReport(r))
	}
	return "Signalements:\n\n" + bulletList(lines)
}

// handleNewReport parses "<point> <type> <priorité> <titre> | <description>"
func (t *TelegramBot) handleNewReport(ctx context.Context, args string) string {
	head, description, _ := strings.Cut(args, "|")
	fields := strings.Fields(head)
	if len(fields) < 4 {
		return "Usage: /report <point> <type> <priorité> <titre> | <description>\nExemple: /report wp-3 panne critique Pompe bloquée | La pompe ne remonte plus d'eau"
	}

	result, err := t.services.Reports.CreateReport(ctx, usecases.ReportRequest{
		WaterPointID: fields[0],
		ReportType:   entities.ReportType(fields[1]),
		Priority:     entities.Priority(fields[2]),
		Title:        strings.Join(fields[3:], " "),
		Description:  strings.TrimSpace(description),
	})
	if err != nil {
		return errorReply(err)
	}

	reply := fmt.Sprintf("Signalement %s enregistré.", result.Report.ID)
	if result.Notification != nil {
		reply += fmt.Sprintf("\nAlerte envoyée à %s.", result.Notification.Recipient)
	}
	return reply
}

func (t *TelegramBot) handleMaintenance(ctx context.Context, status string) string {
	records, err := t.services.Maintenance.ListMaintenance(ctx, entities.MaintenanceStatus(status))
	if err != nil {
		return errorReply(err)
	}
	if len(records) == 0 {
		return "Aucune intervention."
	}
	lines := make([]string, 0, len(records))
	for _, m := range records {
		lines = append(lines, usecases.FormatMaintenance(m))
	}
	return "Interventions:\n\n" + bulletList(lines)
}

// handleSchedule parses "<point> <type> <date> <priorité> <description>"
func (t *TelegramBot) handleSchedule(ctx context.Context, args string) string {
	fields := strings.Fields(args)
	if len(fields) < 4 {
		return "Usage: /schedule <point> <type> <AAAA-MM-JJ> <priorité> <description>\nExemple: /schedule wp-2 préventive 2024-03-01 normale Nettoyage du puits"
	}

	result, err := t.services.Maintenance.ScheduleMaintenance(ctx, usecases.MaintenanceRequest{
		WaterPointID:    fields[0],
		MaintenanceType: entities.MaintenanceType(fields[1]),
		ScheduledDate:   fields[2],
		Priority:        entities.Priority(fields[3]),
		Description:     strings.Join(fields[4:], " "),
	})
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("Intervention %s planifiée le %s.\nNotification envoyée à %s.",
		result.Record.ID, result.Record.ScheduledDate, result.Notification.Recipient)
}

func (t *TelegramBot) handleNotifications(ctx context.Context) string {
	items, err := t.services.Notifications.ListNotifications(ctx)
	if err != nil {
		return errorReply(err)
	}
	if len(items) == 0 {
		return "Aucune notification."
	}
	unread := 0
	lines := make([]string, 0, len(items))
	for _, n := range items {
		marker := "  "
		if !n.IsRead {
			marker = "🔴"
			unread++
		}
		lines = append(lines, fmt.Sprintf("%s %s %s (%s)", marker, n.Timestamp, n.Subject, n.ID))
	}
	return fmt.Sprintf("Notifications (%d non lues):\n\n", unread) + bulletList(lines)
}

func (t *TelegramBot) handleRead(ctx context.Context, id string) string {
	if id == "" {
		return "Précisez l'identifiant de la notification. Exemple: /read notif-..."
	}
	if err := t.services.Notifications.MarkRead(ctx, id); err != nil {
		return errorReply(err)
	}
	return "Notification marquée comme lue."
}

func (t *TelegramBot) handleReadAll(ctx context.Context) string {
	n, err := t.services.Notifications.MarkAllRead(ctx)
	if err != nil {
		return errorReply(err)
	}
	return fmt.Sprintf("%d notifications marquées comme lues.", n)
}

func (t *TelegramBot) handlePredictions(ctx context.Context) string {
	preds, err := t.services.Predictions.ListPredictions(ctx)
	if err != nil {
		return errorReply(err)
	}
	if len(preds) == 0 {
		return "Aucune prédiction disponible."
	}
	lines := make([]string, 0, len(preds))
	for _, p := range preds {
		lines = append(lines, usecases.FormatPrediction(p))
	}
	return "Risques prédits:\n\n" + bulletList(lines)
}

func (t *TelegramBot) handleDashboard(ctx context.Context) string {
	summary, err := t.services.Dashboard.Summary(ctx, usecases.DashboardFilter{})
	if err != nil {
		return errorReply(err)
	}
	return usecases.FormatSummary(summary)
}

func (t *TelegramBot) handleCommunity(ctx context.Context) string {
	posts, err := t.services.Community.ListPosts(ctx, "")
	if err != nil {
		return errorReply(err)
	}
	if len(posts) == 0 {
		return "Le fil communautaire est vide."
	}
	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		lines = append(lines, fmt.Sprintf("[%s] %s - %s (%s, %d ❤)\n  %s",
			p.PostType, p.Title, p.AuthorName, p.CreatedAt, p.LikesCount, truncate(p.Content, excerptLength)))
	}
	return "Fil communautaire:\n\n" + strings.TrimSpace(bulletList(lines))
}

// handleNonCommand processes regular messages
func (t *TelegramBot) handleNonCommand(ctx context.Context, text string) string {
	log.Printf("Received non-command message: %s", text)

	reply, err := t.services.Query.HandleNaturalLanguageQuery(ctx, text)
	if err != nil {
		return errorReply(err)
	}
	return reply
}

func bulletList(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i == listLimit {
			b.WriteString(fmt.Sprintf("… et %d autres\n", len(lines)-listLimit))
			break
		}
		b.WriteString("• " + line + "\n")
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// errorReply turns a use case error into a user message
func errorReply(err error) string {
	switch {
	case errors.Is(err, usecases.ErrValidation):
		return "Requête invalide: " + strings.TrimPrefix(err.Error(), usecases.ErrValidation.Error()+": ")
	case errors.Is(err, usecases.ErrNotFound):
		return "Introuvable. Vérifiez l'identifiant."
	default:
		log.Printf("Error handling message: %v", err)
		return "Erreur interne. Réessayez plus tard."
	}
}
