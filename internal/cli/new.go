package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepwarren/deepwarren/internal/daemon"
	"github.com/deepwarren/deepwarren/internal/domain"
)

func init() {
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a new adventurer and drop them at the dungeon's starting town",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

// startingStats gives a fresh adventurer a flat 10 in each attribute;
// strength 10 yields a zero strength modifier in combat math (C12).
func startingStats() domain.Stats {
	return domain.Stats{Strength: 10, Dexterity: 10, Intelligence: 10, Wisdom: 10, SpeedLevel: 1}
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	d, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}
	defer d.Close()

	if existing, err := d.DB.GetPlayer(ctx, domain.EntityID(name)); err == nil && existing != nil {
		return fmt.Errorf("a save named %q already exists — use `deepwarren load %s` instead", name, name)
	}

	seed, err := d.DB.GetSeed(ctx)
	if err != nil {
		return fmt.Errorf("load world seed: %w", err)
	}

	player := domain.PlayerState{
		ID:            domain.EntityID(name),
		Name:          name,
		CurrentRoomID: seed.StartingSpaceID,
		Health:        100,
		MaxHealth:     100,
		Stats:         startingStats(),
		Gold:          25,
		Skills:        map[string]domain.SkillState{},
	}
	if err := d.DB.PutPlayer(ctx, player); err != nil {
		return fmt.Errorf("save new adventurer: %w", err)
	}

	fmt.Printf("%s descends into the dungeon. Run `deepwarren play %s` to begin.\n", name, name)
	return nil
}
