package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deepwarren/deepwarren/internal/daemon"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the health-check, metrics, and event-stream server",
	Long: `Start DeepWarren's HTTP surface: /healthz, /metrics (when enabled),
and /v1/event-stream for a GUI or terminal front-end to narrate over.
This is not a way to play — use "deepwarren play NAME" for that.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if serveHost != "" {
		d.Config.API.Host = serveHost
	}
	if servePort > 0 {
		d.Config.API.Port = servePort
	}

	return d.Serve(context.Background())
}
