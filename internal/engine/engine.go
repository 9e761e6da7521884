// Package engine implements the Intent dispatcher: the single entry point
// that turns a recognized Intent (§6) into world-state mutations and the
// GameEvents that narrate them. It is the seam where every other
// subsystem — navigation, combat, skills, disposition, quests, trade,
// lifecycle — gets wired together behind one call.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/combat"
	"github.com/deepwarren/deepwarren/internal/combat/ai"
	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/lifecycle"
	"github.com/deepwarren/deepwarren/internal/nav"
	"github.com/deepwarren/deepwarren/internal/quest"
	"github.com/deepwarren/deepwarren/internal/repo"
	"github.com/deepwarren/deepwarren/internal/skill"
	"github.com/deepwarren/deepwarren/internal/turn"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

// Repos bundles every persistence contract the engine needs. Kept as one
// struct (rather than nine constructor parameters) since every handler
// touches a different subset and Go has no named-parameter sugar.
type Repos struct {
	Seeds     repo.WorldSeedRepository
	Chunks    repo.ChunkRepository
	Spaces    repo.SpaceRepository
	Entities  repo.EntityRepository
	Players   repo.PlayerRepository
	Quests    repo.QuestRepository
	Corpses   repo.CorpseRepository
	Templates repo.ItemTemplateRepository
	Treasure  repo.TreasureRoomRepository
}

// Engine holds every subsystem collaborator and the one mutable piece of
// cross-cutting state a session needs: the turn queue and the rng.
type Engine struct {
	repos Repos

	nav      *nav.State
	skill    *skill.Engine
	combat   *combat.Resolver
	queue    *turn.Queue
	notifier *NotificationThrottle

	llm     domain.LlmClient
	modelID string

	rng *rand.Rand
}

// New wires every subsystem from its constituent repositories. navState and
// skillEngine are constructed by the caller (they are also used by
// worldgen's bootstrap path) and passed in rather than rebuilt here.
func New(repos Repos, navState *nav.State, skillEngine *skill.Engine, queue *turn.Queue, llm domain.LlmClient, modelID string, seed int64) *Engine {
	return &Engine{
		repos:    repos,
		nav:      navState,
		skill:    skillEngine,
		combat:   combat.NewResolver(queue),
		queue:    queue,
		notifier: NewNotificationThrottle(3, 100),
		llm:      llm,
		modelID:  modelID,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// worldRNG adapts the engine's *rand.Rand to worldgen.RNG for the handful
// of handlers (MoveTo, Travel) that may trigger frontier expansion.
func (e *Engine) worldRNG() worldgen.RNG { return worldgen.NewRNG(uint64(e.rng.Int63())) }

func (e *Engine) now() int64 { return time.Now().Unix() }

// findNPCByName looks up a hostile-or-friendly NPC in the player's current
// room by case-insensitive name match, the same resolution style every
// target-by-name intent (Attack, Talk, Persuade, ...) needs.
func (e *Engine) findNPCByName(entities []domain.Entity, name string) *domain.NPC {
	for _, ent := range entities {
		if npc, ok := ent.(*domain.NPC); ok && sameTarget(npc.Name, name) {
			return npc
		}
	}
	return nil
}

func (e *Engine) findCorpse(entities []domain.Entity) *domain.Corpse {
	for _, ent := range entities {
		if c, ok := ent.(*domain.Corpse); ok && !c.Looted {
			return c
		}
	}
	return nil
}

// sameTarget matches a free-text query against an entity/template name:
// exact fold-match first, substring fallback so "rat" matches "Cave Rat".
func sameTarget(name, query string) bool {
	if query == "" {
		return false
	}
	if strings.EqualFold(name, query) {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// templateWeightOf is the small repo-backed lookup closure most
// inventory-touching handlers need; reconstructed per-call since the
// engine does not cache the item-template catalog.
func (e *Engine) templateWeightOf(ctx context.Context) func(domain.ItemTemplateID) float64 {
	return func(id domain.ItemTemplateID) float64 {
		t, err := e.repos.Templates.GetTemplate(ctx, id)
		if err != nil {
			return 0
		}
		return t.Weight
	}
}

func newInstanceID() domain.ItemInstanceID {
	return domain.ItemInstanceID(uuid.NewString())
}

// decideMonsterAction/synthesizeCorpse/advanceQuests are thin composition
// points kept as engine methods purely so handlers read as e.foo(...)
// uniformly across subsystems.
func (e *Engine) decideMonsterAction(ctx context.Context, npc *domain.NPC, targetID domain.EntityID, hasHeal bool) ai.Action {
	return ai.Decide(ctx, npc, targetID, hasHeal, e.llm, e.modelID)
}

func (e *Engine) synthesizeCorpse(npc *domain.NPC) *domain.Corpse {
	return lifecycle.SynthesizeCorpse(npc, newInstanceID, e.rng)
}

func (e *Engine) advanceQuests(ctx context.Context, player *domain.PlayerState, action domain.ActionEvent) ([]domain.GameEvent, error) {
	return quest.UpdateAfterAction(ctx, e.repos.Entities, player, action, time.Now())
}
