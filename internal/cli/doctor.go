package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepwarren/deepwarren/internal/daemon"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run the server's health checks once and report the result",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}
	defer d.Close()

	statuses := d.Health.RunOnce(context.Background())

	allHealthy := true
	for _, s := range statuses {
		mark := "OK"
		if !s.Healthy {
			mark = "FAIL"
			allHealthy = false
		}
		fmt.Printf("  [%s] %-12s", mark, s.Name)
		if s.Error != "" {
			fmt.Printf(" — %s", s.Error)
		}
		fmt.Println()
	}

	if !allHealthy {
		os.Exit(1)
	}
	return nil
}
