package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deepwarren/deepwarren/internal/daemon"
)

func init() {
	loadCmd.Flags().BoolVar(&loadList, "list", false, "List existing saves (the command always lists; it never loads a save)")
	rootCmd.AddCommand(loadCmd)
}

var loadList bool

var loadCmd = &cobra.Command{
	Use:   "load [NAME]",
	Short: "List saved adventurers, or resume one with `deepwarren play NAME`",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := daemon.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}
	defer d.Close()

	names, err := d.DB.ListSaves(ctx)
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("No saved adventurers yet — run `deepwarren new NAME` to create one.")
		return nil
	}

	dbPath := filepath.Join(cfg.Storage.Dir, "state.db")
	size := "unknown size"
	if info, err := os.Stat(dbPath); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	fmt.Printf("Saved adventurers (world database: %s):\n", size)
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nResume one with `deepwarren play NAME`.")
	return nil
}
