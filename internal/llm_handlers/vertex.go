package llmHandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// VertexAnthropicClient implements Client for Claude models served through
// Vertex AI, calling the rawPredict endpoint directly with an oauth2 token
// from the application default credentials.
type VertexAnthropicClient struct {
	ProjectID string
	Location  string
	ModelID   string
	MaxTokens int
}

func NewVertexAnthropicClient() *VertexAnthropicClient {
	return &VertexAnthropicClient{
		ProjectID: os.Getenv("GOOGLE_CLOUD_PROJECT_ID"),
		Location:  os.Getenv("GOOGLE_CLOUD_VERTEXAI_LOCATION"),
		ModelID:   os.Getenv("VERTEX_ANTHROPIC_MODEL_ID"),
		MaxTokens: 1024,
	}
}

type anthropicMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *VertexAnthropicClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	if c.ProjectID == "" || c.Location == "" || c.ModelID == "" {
		return "", fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID, GOOGLE_CLOUD_VERTEXAI_LOCATION and VERTEX_ANTHROPIC_MODEL_ID must be set")
	}

	msgs := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}
		msgs = append(msgs, anthropicMessage{Role: role, Content: anthropicContent(m.Content)})
	}

	body := map[string]interface{}{
		"anthropic_version": "vertex-2023-10-16",
		"max_tokens":        c.MaxTokens,
		"messages":          msgs,
	}
	if systemMessage != "" {
		body["system"] = systemMessage
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("find default credentials: %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}

	url := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/anthropic/models/%s:rawPredict",
		c.Location, c.ProjectID, c.Location, c.ModelID,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 120 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vertex request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vertex returned %d: %s", resp.StatusCode, raw)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse vertex response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("vertex error: %s", parsed.Error.Message)
	}

	var out bytes.Buffer
	for _, block := range parsed.Content {
		if block.Type == "text" {
			if out.Len() > 0 {
				out.WriteString("\n\n")
			}
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}

// anthropicContent passes string content through and patches image blocks
// with the source type Anthropic expects.
func anthropicContent(content interface{}) interface{} {
	blocks, ok := content.([]map[string]interface{})
	if !ok {
		return content
	}
	out := make([]map[string]interface{}, 0, len(blocks))
	for _, block := range blocks {
		if block["type"] == "image" {
			if source, ok := block["source"].(map[string]interface{}); ok {
				patched := map[string]interface{}{"type": "base64"}
				for k, v := range source {
					patched[k] = v
				}
				block = map[string]interface{}{"type": "image", "source": patched}
			}
		}
		out = append(out, block)
	}
	return out
}
