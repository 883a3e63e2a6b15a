package schema

import (
	"encoding/json"
	"strings"
)

// MessagePart is one typed part of a browser chat message.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// InboundMessage mirrors the browser chat message wire shape: a role plus
// either a plain content string or a list of typed parts.
type InboundMessage struct {
	Role    string        `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []MessagePart `json:"parts,omitempty"`
}

// ToMessage converts the wire shape into a core Message. Text parts are
// concatenated; non-text parts are ignored.
func (im InboundMessage) ToMessage() Message {
	text := im.Content
	if len(im.Parts) > 0 {
		var sb strings.Builder
		for _, p := range im.Parts {
			if p.Type == "text" {
				sb.WriteString(p.Text)
			}
		}
		text = sb.String()
	}
	return Message{Role: im.Role, Content: text}
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Messages      []InboundMessage `json:"messages"`
	SelectedModel string           `json:"selectedModel"`
	Files         json.RawMessage  `json:"files,omitempty"` // opaque; the client sends it, the server ignores it
	UploadedFiles []FileReference  `json:"uploadedFiles,omitempty"`
}

// Conversation converts the inbound messages into a core conversation with
// empty-content turns dropped, order preserved.
func (r ChatRequest) Conversation() Messages {
	conv := NewMessages()
	for _, im := range r.Messages {
		conv.Messages = append(conv.Messages, im.ToMessage())
	}
	return conv.FilterEmpty()
}
