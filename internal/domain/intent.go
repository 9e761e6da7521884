package domain

// ─── Intent (external input, §6) ────────────────────────────────────────────
// Intent is the fixed sum type the core consumes; the free-text → command
// recognizer that produces it is an out-of-scope collaborator. Each case is
// its own struct implementing the Intent marker interface so the dispatcher
// can switch on concrete type.

// IntentKind tags which concrete struct an Intent value holds.
type IntentKind int

const (
	IntentMove IntentKind = iota
	IntentScout
	IntentTravel
	IntentLook
	IntentSearch
	IntentInteract
	IntentInventory
	IntentTake
	IntentTakeAll
	IntentDrop
	IntentGive
	IntentTalk
	IntentSay
	IntentAttack
	IntentEquip
	IntentUse
	IntentCheck
	IntentPersuade
	IntentIntimidate
	IntentEmote
	IntentAskQuestion
	IntentUseSkill
	IntentTrainSkill
	IntentChoosePerk
	IntentViewSkills
	IntentSave
	IntentLoad
	IntentQuests
	IntentAcceptQuest
	IntentAbandonQuest
	IntentClaimReward
	IntentHelp
	IntentQuit
	IntentRest
	IntentLootCorpse
	IntentTrade
	IntentCraft
	IntentPickpocket
	IntentInvalid
)

// Intent is implemented by every concrete intent struct below.
type Intent interface {
	Kind() IntentKind
}

type MoveIntent struct{ Direction Direction }
type ScoutIntent struct{ Direction Direction }
type TravelIntent struct{ Direction Direction }
type LookIntent struct{ Target string }
type SearchIntent struct{ Target string }
type InteractIntent struct{ Target string }
type InventoryIntent struct{}
type TakeIntent struct{ Target string }
type TakeAllIntent struct{}
type DropIntent struct{ Target string }
type GiveIntent struct {
	Item string
	NPC  string
}
type TalkIntent struct{ NPC string }
type SayIntent struct {
	Message string
	NPC     string // empty if not addressed to a specific NPC
}
type AttackIntent struct{ Target string } // empty = continue current target
type EquipIntent struct{ Target string }
type UseIntent struct{ Target string }
type CheckIntent struct{ Target string }
type PersuadeIntent struct{ Target string }
type IntimidateIntent struct{ Target string }
type EmoteIntent struct {
	Type   string
	Target string
}
type AskQuestionIntent struct {
	NPC   string
	Topic string
}
type UseSkillIntent struct {
	Skill  string
	Action string
}
type TrainSkillIntent struct {
	Skill  string
	Method string
}
type ChoosePerkIntent struct {
	Skill  string
	Choice string
}
type ViewSkillsIntent struct{}
type SaveIntent struct{ Name string }
type LoadIntent struct{ Name string }
type QuestsIntent struct{}
type AcceptQuestIntent struct{ ID QuestID }
type AbandonQuestIntent struct{ ID QuestID }
type ClaimRewardIntent struct{ ID QuestID }
type HelpIntent struct{}
type QuitIntent struct{}
type RestIntent struct{}
type LootCorpseIntent struct{}
type TradeIntent struct {
	Action         string // "buy" | "sell"
	Target         string // item name
	Quantity       int
	MerchantTarget string
}
type CraftIntent struct{ Recipe string }
type PickpocketIntent struct{ Target string }
type InvalidIntent struct{ Message string }

func (MoveIntent) Kind() IntentKind         { return IntentMove }
func (ScoutIntent) Kind() IntentKind        { return IntentScout }
func (TravelIntent) Kind() IntentKind       { return IntentTravel }
func (LookIntent) Kind() IntentKind         { return IntentLook }
func (SearchIntent) Kind() IntentKind       { return IntentSearch }
func (InteractIntent) Kind() IntentKind     { return IntentInteract }
func (InventoryIntent) Kind() IntentKind    { return IntentInventory }
func (TakeIntent) Kind() IntentKind         { return IntentTake }
func (TakeAllIntent) Kind() IntentKind      { return IntentTakeAll }
func (DropIntent) Kind() IntentKind         { return IntentDrop }
func (GiveIntent) Kind() IntentKind         { return IntentGive }
func (TalkIntent) Kind() IntentKind         { return IntentTalk }
func (SayIntent) Kind() IntentKind          { return IntentSay }
func (AttackIntent) Kind() IntentKind       { return IntentAttack }
func (EquipIntent) Kind() IntentKind        { return IntentEquip }
func (UseIntent) Kind() IntentKind          { return IntentUse }
func (CheckIntent) Kind() IntentKind        { return IntentCheck }
func (PersuadeIntent) Kind() IntentKind     { return IntentPersuade }
func (IntimidateIntent) Kind() IntentKind   { return IntentIntimidate }
func (EmoteIntent) Kind() IntentKind        { return IntentEmote }
func (AskQuestionIntent) Kind() IntentKind  { return IntentAskQuestion }
func (UseSkillIntent) Kind() IntentKind     { return IntentUseSkill }
func (TrainSkillIntent) Kind() IntentKind   { return IntentTrainSkill }
func (ChoosePerkIntent) Kind() IntentKind   { return IntentChoosePerk }
func (ViewSkillsIntent) Kind() IntentKind   { return IntentViewSkills }
func (SaveIntent) Kind() IntentKind         { return IntentSave }
func (LoadIntent) Kind() IntentKind         { return IntentLoad }
func (QuestsIntent) Kind() IntentKind       { return IntentQuests }
func (AcceptQuestIntent) Kind() IntentKind  { return IntentAcceptQuest }
func (AbandonQuestIntent) Kind() IntentKind { return IntentAbandonQuest }
func (ClaimRewardIntent) Kind() IntentKind  { return IntentClaimReward }
func (HelpIntent) Kind() IntentKind         { return IntentHelp }
func (QuitIntent) Kind() IntentKind         { return IntentQuit }
func (RestIntent) Kind() IntentKind         { return IntentRest }
func (LootCorpseIntent) Kind() IntentKind   { return IntentLootCorpse }
func (TradeIntent) Kind() IntentKind        { return IntentTrade }
func (CraftIntent) Kind() IntentKind        { return IntentCraft }
func (PickpocketIntent) Kind() IntentKind   { return IntentPickpocket }
func (InvalidIntent) Kind() IntentKind      { return IntentInvalid }
