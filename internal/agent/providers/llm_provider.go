package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("no response from LLM")

// Image is an inline picture sent along with a prompt (whiteboard photo, meal photo).
type Image struct {
	MIMEType string
	Data     []byte
}

// StructuredRequest asks the model for JSON matching Schema. Schema is optional.
type StructuredRequest struct {
	Prompt      string
	Images      []Image
	Schema      *genai.Schema
	Temperature float32
}

// LLMProvider abstracts the generative model used by the coach and the agents.
type LLMProvider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, req StructuredRequest, output interface{}) error
	Close()
}

// GeminiProvider implements LLMProvider on Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &GeminiProvider{
		client:      client,
		modelName:   modelName,
		temperature: 0.7,
	}, nil
}

// model builds a fresh handle per call; GenerativeModel settings are not safe to share
// between concurrent requests.
func (g *GeminiProvider) model(temperature float32) *genai.GenerativeModel {
	m := g.client.GenerativeModel(g.modelName)
	if temperature <= 0 {
		temperature = g.temperature
	}
	m.SetTemperature(temperature)
	return m
}

func (g *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model(0).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func (g *GeminiProvider) GenerateStructured(ctx context.Context, req StructuredRequest, output interface{}) error {
	m := g.model(req.Temperature)
	m.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		m.ResponseSchema = req.Schema
	}

	parts := make([]genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, genai.Blob{MIMEType: img.MIMEType, Data: img.Data})
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return err
	}

	text, err := firstText(resp)
	if err != nil {
		return err
	}
	return DecodeJSON(text, output)
}

func (g *GeminiProvider) Close() {
	g.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}

	return "", fmt.Errorf("no text content in response")
}

// DecodeJSON parses a model answer, tolerating a surrounding ```json fence.
func DecodeJSON(text string, output interface{}) error {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
