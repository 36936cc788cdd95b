package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go-vend-agent/internal/insight"
	"go-vend-agent/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash-001"

// Effort tunes how much latitude the model gets per query. The hosted API
// has no direct effort knob, so it maps onto sampling temperature.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

func (e Effort) temperature() float32 {
	switch e {
	case EffortLow:
		return 0.1
	case EffortHigh:
		return 0.9
	default:
		return 0.4
	}
}

// GeminiOracle is the production Oracle backed by the Gemini API. The API
// key is read from the environment at call time: a missing key fails each
// oracle call with ErrMissingAPIKey and touches nothing else.
type GeminiOracle struct {
	Model  string
	Effort Effort
}

func NewGeminiOracle() *GeminiOracle {
	return &GeminiOracle{Model: defaultModel, Effort: EffortMedium}
}

func (o *GeminiOracle) newClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

func (o *GeminiOracle) generativeModel(client *genai.Client) *genai.GenerativeModel {
	model := client.GenerativeModel(o.Model)
	model.SetTemperature(o.Effort.temperature())
	return model
}

// GetInsight answers a free-form analytics question over the snapshot.
func (o *GeminiOracle) GetInsight(ctx context.Context, query string, snap insight.Snapshot) (string, error) {
	client, err := o.newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("serialize snapshot: %w", err)
	}

	prompt := fmt.Sprintf(`You are an analyst for a fleet of vending machines.
Answer the operator's question using only the data below. Be concise and
concrete; quote numbers from the data rather than estimating.

DATA:
%s

QUESTION: %s`, payload, query)

	model := o.generativeModel(client)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("insight call failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("insight call returned no text")
	}
	return text, nil
}

// GetPriceSuggestion asks for a new price for one product, constraining the
// response to a JSON object so the reply is machine-checkable. Anything that
// does not parse to the {suggestedPrice, reasoning} shape is a failure.
func (o *GeminiOracle) GetPriceSuggestion(ctx context.Context, product models.Product, window insight.ProductSalesWindow) (*PriceSuggestion, error) {
	client, err := o.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	payload, err := json.Marshal(window)
	if err != nil {
		return nil, fmt.Errorf("serialize sales window: %w", err)
	}

	prompt := fmt.Sprintf(`Suggest a vending price for %q.
Current price: %.2f, unit cost: %.2f, stock on hand: %d.
Recent sales for this product (units and revenue are pre-summed):
%s

Respond with a suggested price in the same currency and a one-paragraph
reasoning.`, product.Name, product.Price, product.Cost, product.Quantity, payload)

	model := o.generativeModel(client)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedPrice": {Type: genai.TypeNumber, Description: "Recommended unit price"},
			"reasoning":      {Type: genai.TypeString, Description: "Why this price"},
		},
		Required: []string{"suggestedPrice", "reasoning"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("price suggestion call failed: %w", err)
	}
	return parsePriceSuggestion(responseText(resp))
}

// Chat continues the advisory conversation grounded in the snapshot. When
// audio is requested, synthesis failures degrade to a text-only reply.
func (o *GeminiOracle) Chat(ctx context.Context, history []models.ChatMessage, message string, snap insight.Snapshot, withAudio bool) (*ChatReply, error) {
	client, err := o.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}

	model := o.generativeModel(client)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"You are the assistant built into a vending machine dashboard. "+
				"Ground every answer in this data:\n%s", payload))},
	}

	session := model.StartChat()
	for _, msg := range history {
		session.History = append(session.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("chat call failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("chat call returned no text")
	}

	reply := &ChatReply{Text: text}
	if withAudio {
		audio, err := o.synthesize(ctx, text)
		if err != nil {
			log.Warn().Err(err).Msg("speech synthesis failed, replying text-only")
		} else {
			reply.Audio = audio
		}
	}
	return reply, nil
}

// parsePriceSuggestion enforces the advisory response shape. Both fields
// must be present; a missing field, wrong type, or non-JSON body is
// ErrBadSuggestion.
func parsePriceSuggestion(raw string) (*PriceSuggestion, error) {
	var probe struct {
		SuggestedPrice *float64 `json:"suggestedPrice"`
		Reasoning      *string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSuggestion, err)
	}
	if probe.SuggestedPrice == nil || probe.Reasoning == nil {
		return nil, ErrBadSuggestion
	}
	return &PriceSuggestion{
		SuggestedPrice: *probe.SuggestedPrice,
		Reasoning:      *probe.Reasoning,
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return ""
}
