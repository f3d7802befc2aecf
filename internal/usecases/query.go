package usecases

import (
	"context"
	"fmt"
	"log"

	"github.com/abelzeko/mionjo/internal/integration/openai"
)

// QueryUseCase answers free-text questions about water points
type QueryUseCase struct {
	waterPoints *WaterPointUseCase
	agent       openai.QueryAgent
}

// NewQueryUseCase creates a new query use case. agent may be nil.
func NewQueryUseCase(waterPoints *WaterPointUseCase, agent openai.QueryAgent) *QueryUseCase {
	return &QueryUseCase{waterPoints: waterPoints, agent: agent}
}

// HandleNaturalLanguageQuery interprets a user's free-text query using the AI service
// and returns an appropriate response string.
func (uc *QueryUseCase) HandleNaturalLanguageQuery(ctx context.Context, query string) (string, error) {
	if uc.agent == nil {
		return "Je ne comprends que les commandes pour le moment. Tapez /help pour la liste.", nil
	}
	log.Printf("Interpreting natural language query: %s", query)

	names, err := uc.waterPoints.Names(ctx)
	if err != nil {
		log.Printf("Error fetching water point names: %v", err)
		return "Désolé, la liste des points d'eau est indisponible pour le moment.", nil
	}

	agentResp, err := uc.agent.InterpretUserQuery(ctx, query, names)
	if err != nil {
		log.Printf("Error interpreting user query via OpenAI: %v", err)
		return "Désolé, je n'arrive pas à comprendre pour le moment. Réessayez plus tard ou tapez /help.", nil
	}

	log.Printf("Agent response: Command='%s', WaterPoint='%s', Message='%s'",
		agentResp.CommandName, agentResp.WaterPointName, agentResp.UserMessage)

	switch agentResp.CommandName {
	case openai.CommandGetWaterPoint:
		if agentResp.WaterPointName == "" {
			return agentResp.UserMessage, nil
		}
		wp, err := uc.waterPoints.FindByName(ctx, agentResp.WaterPointName)
		if err != nil {
			log.Printf("Error fetching water point after agent interpretation: %v", err)
			return "Désolé, impossible de lire ce point d'eau pour le moment.", nil
		}
		msg := agentResp.UserMessage
		if msg != "" {
			msg += "\n\n"
		}
		if wp == nil {
			msg += fmt.Sprintf("Aucun point d'eau nommé '%s'. Tapez /points pour la liste.", agentResp.WaterPointName)
			return msg, nil
		}
		return msg + FormatWaterPoint(*wp), nil
	case openai.CommandGeneralQuery:
		return agentResp.UserMessage, nil
	default:
		log.Printf("Agent returned unexpected command: %s", agentResp.CommandName)
		return "Je ne sais pas comment répondre. Tapez /help pour la liste des commandes.", nil
	}
}
