// history.go implements the "querybox history" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/querybox-dev/querybox/internal/history"
	"github.com/querybox-dev/querybox/internal/summary"
)

var (
	historyLimit  int
	historyExport bool
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List or show past interview sessions",
	Long: `With no arguments, history lists the most recently completed
interviews. With a session id, it shows that session's full summary;
add --export to also write the summary artifact to the current
directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of sessions to list")
	historyCmd.Flags().BoolVar(&historyExport, "export", false, "Write the summary artifact for the given session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if !cfg.History.Enabled {
		fmt.Println("History is disabled in the configuration.")
		return nil
	}

	path, err := historyDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolving history database: %w", err)
	}
	store, err := history.NewStore(path)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return showSession(store, args[0])
	}
	return listSessions(store)
}

func listSessions(store *history.Store) error {
	records, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No completed interviews yet.")
		return nil
	}

	fmt.Printf("%-38s %-22s %-14s %6s  %s\n", "SESSION", "ROLE", "MODE", "SCORE", "COMPLETED")
	for _, rec := range records {
		fmt.Printf("%-38s %-22s %-14s %6.1f  %s\n",
			rec.SessionID, truncate(rec.Role, 22), rec.Mode,
			rec.OverallScore, rec.CompletedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func showSession(store *history.Store, sessionID string) error {
	rec, err := store.Get(sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("session %s not found", sessionID)
	}

	fmt.Printf("Session:   %s\n", rec.SessionID)
	fmt.Printf("Role:      %s (%s)\n", rec.Role, rec.Mode)
	fmt.Printf("Score:     %.1f/10 over %d questions\n", rec.OverallScore, rec.TotalQuestions)
	fmt.Printf("Completed: %s\n", rec.CompletedAt.Local().Format("2006-01-02 15:04"))

	if s := rec.Summary; s != nil {
		printList("Strengths", s.Strengths)
		printList("Areas for improvement", s.Weaknesses)
		printList("Suggested resources", s.Resources)
	}

	if historyExport && rec.Summary != nil {
		path, err := summary.WriteFile(".", rec.Summary)
		if err != nil {
			return fmt.Errorf("exporting summary: %w", err)
		}
		fmt.Println()
		fmt.Printf("Exported to %s\n", path)
	}
	return nil
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(title + ":")
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
