package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Commands the agent can choose
const (
	CommandGetWaterPoint = "GetWaterPointByName"
	CommandGeneralQuery  = "GeneralQuery"
)

// AgentResponse defines the structured output from the query agent.
type AgentResponse struct {
	CommandName    string `json:"command_name" jsonschema_description:"The command to execute, e.g., GetWaterPointByName or GeneralQuery"`
	WaterPointName string `json:"water_point_name" jsonschema_description:"The exact name of the water point from the known list, if applicable"`
	UserMessage    string `json:"user_message" jsonschema_description:"A message to show back to the user in their original language"`
}

// QueryAgent interprets free-text questions about water points
type QueryAgent interface {
	InterpretUserQuery(ctx context.Context, userMessage string, knownWaterPoints []string) (*AgentResponse, error)
}

type queryAgent struct {
	client openai.Client
	schema interface{}
}

// NewQueryAgent creates an agent backed by the OpenAI chat API
func NewQueryAgent(apiKey string, opts ...option.RequestOption) (QueryAgent, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &queryAgent{
		client: client,
		schema: GenerateSchema[AgentResponse](),
	}, nil
}

// InterpretUserQuery sends a message to the agent and returns the structured response.
func (a *queryAgent) InterpretUserQuery(ctx context.Context, userMessage string, knownWaterPoints []string) (*AgentResponse, error) {
	systemPrompt := fmt.Sprintf(`You are the assistant of MIONJO, a platform that tracks rural water points (boreholes, wells, springs, reservoirs, public taps) in southern Madagascar.
Field technicians, NGO staff and community members ask you about the state of these water points.

Requirements:
- You understand French, Malagasy and English.
- You reply in the same language the user used, briefly and politely.

List of known water points: %s

Behavior:
1. If the user clearly wants information about a specific water point from the list:
   - command_name = "GetWaterPointByName"
   - water_point_name: the exact name from the list; if it is missing or ambiguous, leave it empty.
   - user_message: a one-line confirmation in the user's language.
2. Otherwise (greetings, small talk, general questions):
   - command_name = "GeneralQuery"
   - water_point_name = ""
   - user_message: a short answer in the user's language, pointing to /help when useful.

Output **strictly** in JSON.`, strings.Join(knownWaterPoints, "; "))

	return structuredCompletion[AgentResponse](ctx, a.client, a.schema,
		"agent_response",
		"Structured response containing command, water point name, and user message",
		systemPrompt, userMessage)
}
