// Package cli implements the DeepWarren command-line interface using Cobra.
package cli

import (
	"strconv"
	"strings"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// parseCommand turns one line of player input into an Intent. This is a
// small fixed-vocabulary mapper for the interactive session runner, not
// the sophisticated free-text intent recognizer spec.md explicitly
// treats as an out-of-scope external collaborator — it exists only so
// `deepwarren play` has something to drive the engine with.
func parseCommand(line string) domain.Intent {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return domain.InvalidIntent{Message: ""}
	}
	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch verb {
	case "n", "north", "s", "south", "e", "east", "w", "west", "up", "down", "ne", "nw", "se", "sw":
		return domain.MoveIntent{Direction: domain.Direction(expandDirection(verb))}
	case "go", "move":
		return domain.MoveIntent{Direction: domain.Direction(expandDirection(rest))}
	case "travel":
		return domain.TravelIntent{Direction: domain.Direction(expandDirection(rest))}
	case "scout":
		return domain.ScoutIntent{Direction: domain.Direction(expandDirection(rest))}
	case "look", "l":
		return domain.LookIntent{Target: rest}
	case "search":
		return domain.SearchIntent{Target: rest}
	case "interact", "use-feature":
		return domain.InteractIntent{Target: rest}
	case "inventory", "inv", "i":
		return domain.InventoryIntent{}
	case "take", "get":
		if strings.EqualFold(rest, "all") {
			return domain.TakeAllIntent{}
		}
		return domain.TakeIntent{Target: rest}
	case "drop":
		return domain.DropIntent{Target: rest}
	case "give":
		item, npc := splitTwo(rest, " to ")
		return domain.GiveIntent{Item: item, NPC: npc}
	case "talk":
		return domain.TalkIntent{NPC: rest}
	case "say":
		msg, npc := splitTwo(rest, " to ")
		return domain.SayIntent{Message: msg, NPC: npc}
	case "attack", "kill", "a":
		return domain.AttackIntent{Target: rest}
	case "equip", "wield", "wear":
		return domain.EquipIntent{Target: rest}
	case "use":
		return domain.UseIntent{Target: rest}
	case "check", "examine":
		return domain.CheckIntent{Target: rest}
	case "persuade":
		return domain.PersuadeIntent{Target: rest}
	case "intimidate":
		return domain.IntimidateIntent{Target: rest}
	case "emote":
		kind, target := splitTwo(rest, " at ")
		return domain.EmoteIntent{Type: kind, Target: target}
	case "ask":
		npc, topic := splitTwo(rest, " about ")
		return domain.AskQuestionIntent{NPC: npc, Topic: topic}
	case "useskill":
		skill, action := splitTwo(rest, " on ")
		return domain.UseSkillIntent{Skill: skill, Action: action}
	case "train":
		skill, method := splitTwo(rest, " via ")
		return domain.TrainSkillIntent{Skill: skill, Method: method}
	case "perk":
		skill, choice := splitTwo(rest, " ")
		return domain.ChoosePerkIntent{Skill: skill, Choice: choice}
	case "skills":
		return domain.ViewSkillsIntent{}
	case "save":
		return domain.SaveIntent{Name: rest}
	case "load":
		return domain.LoadIntent{Name: rest}
	case "quests":
		return domain.QuestsIntent{}
	case "accept":
		return domain.AcceptQuestIntent{ID: domain.QuestID(rest)}
	case "abandon":
		return domain.AbandonQuestIntent{ID: domain.QuestID(rest)}
	case "claim":
		return domain.ClaimRewardIntent{ID: domain.QuestID(rest)}
	case "help", "?":
		return domain.HelpIntent{}
	case "quit", "exit":
		return domain.QuitIntent{}
	case "rest":
		return domain.RestIntent{}
	case "loot":
		return domain.LootCorpseIntent{}
	case "buy", "sell":
		item, merchant := splitTwo(rest, " from ")
		qty := 1
		words := strings.Fields(item)
		if len(words) > 0 {
			if n, err := strconv.Atoi(words[0]); err == nil {
				qty = n
				item = strings.TrimSpace(strings.Join(words[1:], " "))
			}
		}
		return domain.TradeIntent{Action: verb, Target: item, Quantity: qty, MerchantTarget: merchant}
	case "craft":
		return domain.CraftIntent{Recipe: rest}
	case "pickpocket", "steal":
		return domain.PickpocketIntent{Target: rest}
	default:
		return domain.InvalidIntent{Message: line}
	}
}

func expandDirection(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n":
		return "north"
	case "s":
		return "south"
	case "e":
		return "east"
	case "w":
		return "west"
	case "ne":
		return "northeast"
	case "nw":
		return "northwest"
	case "se":
		return "southeast"
	case "sw":
		return "southwest"
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// splitTwo splits on the first occurrence of sep, trimming both halves.
// When sep is absent, the whole string is the first half.
func splitTwo(s, sep string) (string, string) {
	if idx := strings.Index(strings.ToLower(s), sep); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])
	}
	return strings.TrimSpace(s), ""
}
