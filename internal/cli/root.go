package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deepwarren",
	Short: "DeepWarren — a procedurally generated text-adventure dungeon",
	Long: `DeepWarren is a single-player text-adventure dungeon simulator.
A hierarchical world graph generates lazily as you explore, narrated by
a language model where one is configured and falling back to
deterministic prose otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
