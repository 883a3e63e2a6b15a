package schema

// ChunkType discriminates the events emitted over one streaming response.
type ChunkType string

const (
	ChunkText       ChunkType = "text-delta"
	ChunkReasoning  ChunkType = "reasoning-delta"
	ChunkToolCall   ChunkType = "tool-call"
	ChunkToolResult ChunkType = "tool-result"
	ChunkError      ChunkType = "error"
	ChunkFinish     ChunkType = "finish"
)

// Chunk is one event in the ordered, append-only stream produced by a chat
// turn. The sequence terminates with a finish or error chunk; a stream cut
// short is terminal for that turn and is not resumable.
type Chunk struct {
	Type         ChunkType      `json:"type"`
	Text         string         `json:"text,omitempty"`
	ToolCallID   string         `json:"toolCallId,omitempty"`
	ToolName     string         `json:"toolName,omitempty"`
	Args         map[string]any `json:"args,omitempty"`
	Result       string         `json:"result,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// TextChunk returns a text-delta chunk.
func TextChunk(text string) Chunk { return Chunk{Type: ChunkText, Text: text} }

// ReasoningChunk returns a reasoning-delta chunk.
func ReasoningChunk(text string) Chunk { return Chunk{Type: ChunkReasoning, Text: text} }
