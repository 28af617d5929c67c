// Package suggest wraps the OpenAI chat completions API behind a small
// client used by the assistant endpoints. All responses are constrained
// with strict JSON schemas so the output can be unmarshaled directly.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CatalogEntry is the slice of video detail shown to the model when
// asking for suggestions.
type CatalogEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Zone        string `json:"zone,omitempty"`
	Level       string `json:"level,omitempty"`
}

// Suggestion is one candidate returned by the model. The video id is
// untrusted until the caller has checked it against the live catalog.
type Suggestion struct {
	VideoID string `json:"video_id" jsonschema_description:"The id of a video picked from the provided catalog. Must be copied verbatim."`
	Reason  string `json:"reason" jsonschema_description:"One short sentence explaining why this video fits the described condition."`
}

// ActivityLine is one aggregated row of a patient's viewing history,
// used as input when asking the model for a prose summary.
type ActivityLine struct {
	VideoTitle string `json:"video_title"`
	OpenCount  int    `json:"open_count"`
	LastOpened string `json:"last_opened,omitempty"`
}

type suggestionResult struct {
	Suggestions []Suggestion `json:"suggestions" jsonschema_description:"The videos from the catalog that best match the condition, most relevant first. Return an empty list if nothing fits."`
}

type summaryResult struct {
	Summary string `json:"summary" jsonschema_description:"A short paragraph, written for a clinician, summarizing the patient's engagement with their exercise program."`
}

// GenerateSchema generates a JSON schema for structured outputs.
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var (
	suggestionSchema = GenerateSchema[suggestionResult]()
	summarySchema    = GenerateSchema[summaryResult]()
)

const defaultTimeout = 30 * time.Second

// Client talks to the OpenAI API with a fixed model.
type Client struct {
	api     openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		api:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   openai.ChatModel(model),
		timeout: defaultTimeout,
	}
}

// WithTimeout sets the per-request deadline.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// SuggestExercises asks the model to pick catalog videos matching a
// free-text condition. Returned ids are not validated here.
func (c *Client) SuggestExercises(ctx context.Context, prompt string, catalog []CatalogEntry) ([]Suggestion, error) {
	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}

	userPrompt := fmt.Sprintf(`You are assisting an osteopath who is building an exercise program for a patient.

The patient's condition or goal, in the clinician's words:
%q

The full catalog of available exercise videos, as JSON:
%s

Pick the videos from this catalog that best address the condition. Only use ids that appear in the catalog. Prefer a handful of well-matched videos over an exhaustive list.`,
		strings.TrimSpace(prompt), catalogJSON)

	result, err := structuredCompletion[suggestionResult](ctx, c, "exercise_suggestions", userPrompt, suggestionSchema)
	if err != nil {
		return nil, err
	}
	return result.Suggestions, nil
}

// SummarizeActivity asks the model for a short prose summary of a
// patient's aggregated viewing activity.
func (c *Client) SummarizeActivity(ctx context.Context, patientName string, lines []ActivityLine) (string, error) {
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("marshal activity: %w", err)
	}

	userPrompt := fmt.Sprintf(`You are assisting an osteopath reviewing how a patient engages with their prescribed exercise program.

Patient: %s
Aggregated viewing activity (opens per video), as JSON:
%s

Write a short paragraph for the clinician summarizing the patient's engagement: which exercises they focus on, which they neglect, and the overall level of activity. If the list is empty, say the patient has not opened any exercises yet.`,
		patientName, linesJSON)

	result, err := structuredCompletion[summaryResult](ctx, c, "activity_summary", userPrompt, summarySchema)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Summary), nil
}

// structuredCompletion calls the chat completions API with JSON schema enforcement.
func structuredCompletion[T any](ctx context.Context, c *Client, name, prompt string, schema interface{}) (*T, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String("Structured data response"),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: c.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion")
	}

	raw := completion.Choices[0].Message.Content
	if raw == "" {
		return nil, fmt.Errorf("empty completion, finish reason %s", completion.Choices[0].FinishReason)
	}

	var result T
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("parse completion: %w", err)
	}
	return &result, nil
}
