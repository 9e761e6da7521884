package worldgen

import (
	"context"
	"strings"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Lore inheritance (C5) ──────────────────────────────────────────────────

const (
	loreTemperature  = 0.7
	themeTemperature = 0.7

	loreSystemPrompt = "You are the lorekeeper of an underground dungeon world. " +
		"Every location is subterranean: caves, tunnels, vaults, roots, sunken ruins. " +
		"Never mention sky, sun, weather, or any surface-world vocabulary. " +
		"Write 2-4 sentences that preserve the parent lore's factions and stakes " +
		"while adding detail appropriate to the requested granularity."

	themeSystemPrompt = "You are naming a dungeon biome. Given a parent theme and a " +
		"short variation, respond with a blended biome name of 2-4 words, underground only."
)

// Lore composes the child-lore and theme-blend calls C4 needs. Both route
// through the same LlmClient; on transport failure Lore itself retries
// once, then falls back to the parent's lore (or theme) verbatim (§4.5).
type Lore struct {
	llm     domain.LlmClient
	modelID string
}

func NewLore(llm domain.LlmClient, modelID string) *Lore {
	return &Lore{llm: llm, modelID: modelID}
}

// VaryLore derives a 2-4 sentence child lore from parentLore, scoped to
// level and (optionally) direction.
func (l *Lore) VaryLore(ctx context.Context, parentLore string, level domain.ChunkLevel, direction domain.Direction) (string, error) {
	if l.llm == nil {
		return parentLore, nil
	}
	userCtx := "Parent lore: " + parentLore + "\nGranularity: " + level.String()
	if direction != "" {
		userCtx += "\nDirection from parent: " + string(direction)
	}

	text, err := l.callWithOneRetry(ctx, loreSystemPrompt, userCtx, loreTemperature)
	if err != nil {
		return parentLore, nil // verbatim fallback, never propagate failure (§4.5)
	}
	return text, nil
}

// BlendThemes derives a 2-4 word biome name from a parent theme and a
// variation description (typically the freshly-generated child lore).
func (l *Lore) BlendThemes(ctx context.Context, parentTheme, variation string) (string, error) {
	if l.llm == nil {
		return parentTheme, nil
	}
	userCtx := "Parent theme: " + parentTheme + "\nVariation: " + variation

	text, err := l.callWithOneRetry(ctx, themeSystemPrompt, userCtx, themeTemperature)
	if err != nil {
		return parentTheme, nil
	}
	return strings.TrimSpace(text), nil
}

func (l *Lore) callWithOneRetry(ctx context.Context, systemPrompt, userCtx string, temperature float64) (string, error) {
	const maxTokens = 256
	resp, err := l.llm.ChatCompletion(ctx, l.modelID, systemPrompt, userCtx, maxTokens, temperature)
	if err == nil && len(resp.Choices) > 0 {
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	resp, err = l.llm.ChatCompletion(ctx, l.modelID, systemPrompt, userCtx, maxTokens, temperature)
	if err != nil || len(resp.Choices) == 0 {
		return "", domain.ErrTransportFailed
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
