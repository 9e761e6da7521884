package domain

import "context"

// ─── LLM capability boundary ────────────────────────────────────────────────
// LlmClient abstracts the generative backend (infra/llm wraps the Anthropic
// SDK). Application layers depend on this interface, never the concrete
// client, so the world generator and dialogue/narration callers stay
// testable with a stub.

// ChatMessage is one turn of a chat-style completion request or response.
type ChatMessage struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// ChatCompletion is the normalized reply shape returned by LlmClient.ChatCompletion.
type ChatCompletion struct {
	Choices []ChatChoice
}

type ChatChoice struct {
	Message ChatMessage
}

// LlmClient is implemented by infra/llm.Client.
type LlmClient interface {
	// ChatCompletion sends a system/user prompt pair and returns the model's
	// normalized reply. maxTokens and temperature bound length and variance.
	ChatCompletion(ctx context.Context, modelID string, systemPrompt, userContext string, maxTokens int, temperature float64) (ChatCompletion, error)

	// CreateEmbedding returns a dense vector for text. No component in this
	// module calls it.
	CreateEmbedding(ctx context.Context, text string, model string) ([]float64, error)

	Close() error
}

// GenerationContext carries the lore chain and positional facts a content
// generator needs to keep a new chunk or space consistent with its
// ancestors (§4.4 step 2: lore inheritance).
type GenerationContext struct {
	GlobalLore     string
	ParentLore     []string // root → immediate parent, in order
	Level          ChunkLevel
	Direction      Direction
	BiomeTheme     string
	DifficultyHint int
	Seed           int64

	// ForceBossCapable overrides the generator's own random boss-eligibility
	// roll; set by the dedicated boss-chunk bootstrap path (§4.6 step 2)
	// instead of leaving boss placement to chance.
	ForceBossCapable bool
}
