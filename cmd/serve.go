package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/chunkpipe/logger"
	"github.com/gaurav-prasanna/chunkpipe/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form for preprocessing and downloading chunks",
	Long: `Serve starts an HTTP server with a form for pasting text, a download
endpoint for processed_chunks.txt, and a JSON API at /api/chunks.

Examples:
  chunkpipe serve
  chunkpipe serve --port 5000
  CHUNKPIPE_SERVER_PORT=5000 chunkpipe serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "Address to listen on")
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(appConfig.Server, logger.GetDefault()).Run(ctx)
}
