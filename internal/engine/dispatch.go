package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/metrics"
)

// Dispatch is the single entry point a transport (the CLI session runner)
// calls with a recognized Intent. It type-switches on the concrete Intent
// struct rather than Kind(), the same way the teacher's task router
// switched on its job payload type.
func (e *Engine) Dispatch(ctx context.Context, player *domain.PlayerState, intent domain.Intent) ([]domain.GameEvent, error) {
	kind := fmt.Sprintf("%T", intent)
	start := time.Now()
	defer func() {
		metrics.IntentLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		metrics.TurnQueueDepth.Set(float64(e.queue.Len()))
	}()

	events, err := e.dispatch(ctx, player, intent)
	if err == nil {
		tickEvents, tickErr := e.advanceWorld(ctx, player)
		events = append(events, tickEvents...)
		err = tickErr
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.IntentsHandled.WithLabelValues(kind, outcome).Inc()
	return events, err
}

func (e *Engine) dispatch(ctx context.Context, player *domain.PlayerState, intent domain.Intent) ([]domain.GameEvent, error) {
	switch in := intent.(type) {
	case domain.MoveIntent:
		return e.handleMove(ctx, player, in)
	case domain.ScoutIntent:
		return e.handleScout(ctx, player, in)
	case domain.TravelIntent:
		return e.handleTravel(ctx, player, in)
	case domain.LookIntent:
		return e.handleLook(ctx, player, in)
	case domain.SearchIntent:
		return e.handleSearch(ctx, player, in)
	case domain.InteractIntent:
		return e.handleInteract(ctx, player, in)
	case domain.InventoryIntent:
		return e.handleInventory(player)
	case domain.TakeIntent:
		return e.handleTake(ctx, player, in)
	case domain.TakeAllIntent:
		return e.handleTakeAll(ctx, player)
	case domain.DropIntent:
		return e.handleDrop(ctx, player, in)
	case domain.GiveIntent:
		return e.handleGive(ctx, player, in)
	case domain.TalkIntent:
		return e.handleTalk(ctx, player, in)
	case domain.SayIntent:
		return e.handleSay(ctx, player, in)
	case domain.AttackIntent:
		return e.handleAttack(ctx, player, in)
	case domain.EquipIntent:
		return e.handleEquip(ctx, player, in)
	case domain.UseIntent:
		return e.handleUse(ctx, player, in)
	case domain.CheckIntent:
		return e.handleCheck(ctx, player, in)
	case domain.PersuadeIntent:
		return e.handlePersuade(ctx, player, in)
	case domain.IntimidateIntent:
		return e.handleIntimidate(ctx, player, in)
	case domain.EmoteIntent:
		return e.handleEmote(player, in)
	case domain.AskQuestionIntent:
		return e.handleAskQuestion(ctx, player, in)
	case domain.UseSkillIntent:
		return e.handleUseSkill(ctx, player, in)
	case domain.TrainSkillIntent:
		return e.handleTrainSkill(ctx, player, in)
	case domain.ChoosePerkIntent:
		return e.handleChoosePerk(player, in)
	case domain.ViewSkillsIntent:
		return e.handleViewSkills(player)
	case domain.SaveIntent:
		return e.handleSave(ctx, player, in)
	case domain.QuestsIntent:
		return e.handleQuests(player)
	case domain.AcceptQuestIntent:
		return e.handleAcceptQuest(ctx, player, in)
	case domain.AbandonQuestIntent:
		return e.handleAbandonQuest(player, in)
	case domain.ClaimRewardIntent:
		return e.handleClaimReward(player, in)
	case domain.HelpIntent:
		return e.handleHelp()
	case domain.QuitIntent:
		return e.handleQuit()
	case domain.RestIntent:
		return e.handleRest(ctx, player)
	case domain.LootCorpseIntent:
		return e.handleLootCorpse(ctx, player)
	case domain.TradeIntent:
		return e.handleTrade(ctx, player, in)
	case domain.CraftIntent:
		return e.handleCraft(in)
	case domain.PickpocketIntent:
		return e.handlePickpocket(ctx, player, in)
	case domain.InvalidIntent:
		return e.handleInvalid(in)
	default:
		return nil, fmt.Errorf("engine: unrecognized intent %T", intent)
	}
}

// DispatchLoad handles LoadIntent separately: it is the one intent that
// replaces the *domain.PlayerState pointer a session holds rather than
// mutating the one it's given.
func (e *Engine) DispatchLoad(ctx context.Context, in domain.LoadIntent) (*domain.PlayerState, []domain.GameEvent, error) {
	return e.handleLoad(ctx, in)
}
