// init.go implements the "querybox init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/querybox-dev/querybox/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration to ~/.querybox/config.yaml",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	// Ask before clobbering an existing config.
	if _, err := config.ReadConfig(home); err == nil {
		fmt.Println("Warning: ~/.querybox/config.yaml already exists.")
		fmt.Print("Overwrite with defaults? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(home, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println()
	fmt.Println("QueryBox initialized")
	fmt.Printf("  Backend:   %s\n", cfg.Server.URL)
	fmt.Printf("  Role:      %s\n", cfg.Interview.Role)
	fmt.Printf("  Mode:      %s\n", cfg.Interview.Mode)
	fmt.Printf("  Questions: %d\n", cfg.Interview.Questions)
	fmt.Println()
	fmt.Printf("Configuration written to %s\n", filepath.Join(home, ".querybox", "config.yaml"))
	fmt.Println("Run 'querybox' to start an interview, or 'querybox serve' for the built-in backend.")
	return nil
}
