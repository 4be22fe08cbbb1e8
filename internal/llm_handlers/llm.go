package llmHandlers

import (
	"context"
)

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of a conversation. Content is either a string or, for
// multimodal turns, []map[string]interface{} blocks of the form
// {"type":"text","text":...} / {"type":"image","source":{"media_type":...,
// "data": base64}}.
type Message struct {
	Role    MessageRole
	Content interface{}
}

// Client is the provider-independent chat interface every backend implements.
type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
}

// TextMessage builds a plain text turn.
func TextMessage(role MessageRole, text string) Message {
	return Message{Role: role, Content: text}
}

// ImageMessage builds a user turn carrying a prompt plus one inline image.
func ImageMessage(prompt, mediaType, base64Data string) Message {
	return Message{
		Role: RoleUser,
		Content: []map[string]interface{}{
			{"type": "text", "text": prompt},
			{"type": "image", "source": map[string]interface{}{
				"media_type": mediaType,
				"data":       base64Data,
			}},
		},
	}
}
