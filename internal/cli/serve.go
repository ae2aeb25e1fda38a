// serve.go implements the "querybox serve" command: the built-in
// practice backend.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/querybox-dev/querybox/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the built-in practice backend",
	Long: `Serve starts a local interview backend with built-in question banks
and a heuristic answer evaluator. Point the client at it with
--server or server.url in the config, then run 'querybox' in another
terminal.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:5001", "Address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(serveAddr)
	if err != nil {
		return err
	}

	fmt.Printf("Practice backend listening on http://%s\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop.")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		fmt.Println("\nShutting down.")
		return srv.Stop()
	}
}
