// health.go implements the "querybox health" command.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/querybox-dev/querybox/internal/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the configured backend is reachable",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	client := api.NewClient(cfg.Server.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend at %s is unreachable: %w", cfg.Server.URL, err)
	}

	fmt.Printf("Backend:  %s\n", cfg.Server.URL)
	fmt.Printf("Status:   %s\n", status.Status)
	return nil
}
