package llmHandlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenaiGeminiClient implements Client for Gemini via the Google AI API.
// It is also the vision path: image blocks in a message become inline data
// parts, which is what the OCR engine relies on.
type GenaiGeminiClient struct {
	client  *genai.Client
	modelID string

	Temperature float32
	MaxTokens   int32
}

func NewGenaiGeminiClient(ctx context.Context) (*GenaiGeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	modelID := os.Getenv("GEMINI_MODEL_ID")

	if apiKey == "" || modelID == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY and GEMINI_MODEL_ID must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GenaiGeminiClient{
		client:      client,
		modelID:     modelID,
		Temperature: 0.2,
		MaxTokens:   1024,
	}, nil
}

// convertMessagesToGenaiContent converts our Message format to genai.Content.
// System turns are gathered separately; image blocks become inline data.
func convertMessagesToGenaiContent(messages []Message) (string, []*genai.Content, error) {
	systemParts := []string{}
	contents := []*genai.Content{}

	for _, m := range messages {
		role := strings.ToLower(strings.TrimSpace(string(m.Role)))

		if role == "system" {
			switch c := m.Content.(type) {
			case string:
				systemParts = append(systemParts, c)
			default:
				b, _ := json.Marshal(c)
				systemParts = append(systemParts, string(b))
			}
			continue
		}

		var parts []*genai.Part
		switch c := m.Content.(type) {
		case string:
			parts = append(parts, &genai.Part{Text: c})
		case []map[string]interface{}:
			for _, block := range c {
				blockType, _ := block["type"].(string)
				switch blockType {
				case "text":
					if text, ok := block["text"].(string); ok {
						parts = append(parts, &genai.Part{Text: text})
					}
				case "image":
					source, ok := block["source"].(map[string]interface{})
					if !ok {
						continue
					}
					mediaType, _ := source["media_type"].(string)
					dataStr, _ := source["data"].(string)
					raw, err := base64.StdEncoding.DecodeString(dataStr)
					if err != nil {
						return "", nil, fmt.Errorf("decode image block: %w", err)
					}
					parts = append(parts, &genai.Part{
						InlineData: &genai.Blob{MIMEType: mediaType, Data: raw},
					})
				}
			}
		default:
			b, _ := json.Marshal(c)
			parts = append(parts, &genai.Part{Text: string(b)})
		}
		if len(parts) == 0 {
			continue
		}

		// map role: "assistant" -> "model", everything else -> "user"
		roleOut := "user"
		if role == "assistant" || role == "model" {
			roleOut = "model"
		}
		contents = append(contents, &genai.Content{Role: roleOut, Parts: parts})
	}

	systemText := strings.Join(systemParts, "\n")
	return systemText, contents, nil
}

func (v *GenaiGeminiClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	_, contents, err := convertMessagesToGenaiContent(messages)
	if err != nil {
		return "", fmt.Errorf("convert messages: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     &v.Temperature,
		MaxOutputTokens: v.MaxTokens,
	}
	if systemMessage != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemMessage}},
		}
	}

	resp, err := v.client.Models.GenerateContent(ctx, v.modelID, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
		}
	}
	return sb.String(), nil
}
