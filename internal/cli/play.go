package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deepwarren/deepwarren/internal/daemon"
	"github.com/deepwarren/deepwarren/internal/domain"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play NAME",
	Short: "Resume an adventurer's session",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	name := args[0]

	d, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}
	defer d.Close()

	player, err := d.DB.GetPlayer(ctx, domain.EntityID(name))
	if err != nil {
		return fmt.Errorf("no adventurer named %q — run `deepwarren new %s` first: %w", name, name, err)
	}

	fmt.Printf("Welcome back, %s. (type `help` for commands, `quit` to leave)\n", player.Name)
	printEvents([]domain.GameEvent{domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: player.CurrentRoomID}})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		intent := parseCommand(line)

		if _, ok := intent.(domain.QuitIntent); ok {
			if err := d.DB.PutPlayer(ctx, *player); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to save on quit: %v\n", err)
			}
			fmt.Println("Your progress is saved. Farewell.")
			return nil
		}

		if load, ok := intent.(domain.LoadIntent); ok {
			newPlayer, events, err := d.Engine.DispatchLoad(ctx, load)
			printEvents(events)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			player = newPlayer
			continue
		}

		events, err := d.Engine.Dispatch(ctx, player, intent)
		if d.Hub != nil {
			d.Hub.Broadcast(events)
		}
		printEvents(events)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		announceCorpses(ctx, d, player)
	}

	return d.DB.PutPlayer(ctx, *player)
}

func printEvents(events []domain.GameEvent) {
	for _, event := range events {
		switch e := event.(type) {
		case domain.NarrativeEvent:
			fmt.Println(e.Text)
		case domain.SystemEvent:
			prefix := "info"
			switch e.Level {
			case domain.SystemWarning:
				prefix = "warn"
			case domain.SystemError:
				prefix = "error"
			}
			fmt.Printf("[%s] %s\n", prefix, e.Text)
		case domain.CombatEvent:
			fmt.Println(e.Text)
		case domain.QuestEvent:
			fmt.Printf("[quest] %s\n", e.Text)
		case domain.StatusUpdateEvent:
			fmt.Printf("HP %d/%d — %s\n", e.Health, e.MaxHealth, e.Location)
		}
	}
}

// announceCorpses prints a decay countdown for any unlooted corpse in the
// player's current room, using humanize.Time the way the teacher formats
// other relative timestamps.
func announceCorpses(ctx context.Context, d *daemon.Daemon, player *domain.PlayerState) {
	entities, err := d.DB.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return
	}
	for _, ent := range entities {
		corpse, ok := ent.(*domain.Corpse)
		if !ok || corpse.Looted {
			continue
		}
		data, err := d.DB.GetCorpse(ctx, domain.CorpseID(corpse.ID))
		if err != nil {
			continue
		}
		fmt.Printf("(%s's remains will decay %s)\n", corpse.SourceName, humanize.Time(data.DecayTimer))
	}
}
