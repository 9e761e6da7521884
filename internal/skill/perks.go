package skill

import "github.com/deepwarren/deepwarren/internal/domain"

// PerkCatalog is the declarative table of perk choices offered at every
// 10th-level milestone, one row per skill category, in the same
// flat-table style the teacher uses for its achievement definitions.
var PerkCatalog = map[string][]domain.Perk{
	"perception": {
		{Name: "Keen Eye", Description: "Spot hidden passages more readily", Bonus: 2},
		{Name: "Owl Sight", Description: "See clearly in near-total darkness", Bonus: 3},
	},
	"melee": {
		{Name: "Heavy Hand", Description: "Weapon swings land harder", Bonus: 2},
		{Name: "Precise Strikes", Description: "Critical hits land more reliably", Bonus: 3},
	},
	"persuasion": {
		{Name: "Silver Tongue", Description: "Persuasion attempts carry more weight", Bonus: 2},
		{Name: "Trusted Voice", Description: "NPCs warm to you faster", Bonus: 3},
	},
	"stealth": {
		{Name: "Light Step", Description: "Move more quietly", Bonus: 2},
		{Name: "Shadow Walk", Description: "Near-invisible outside direct light", Bonus: 3},
	},
	"survival": {
		{Name: "Hardy", Description: "Resist environmental harm", Bonus: 2},
		{Name: "Iron Constitution", Description: "Shrug off what would fell others", Bonus: 3},
	},
}

// PerksFor returns the perk options available for skill, or nil if it has
// no catalog entry (a milestone still occurs; the caller simply has
// nothing to offer beyond the level-up itself).
func PerksFor(skill string) []domain.Perk {
	return PerkCatalog[skill]
}
