package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codearena/arena/internal/store"
	"github.com/codearena/arena/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo, w io.Writer) error {
			sessions, err := repo.PracticeHistory(ctx, limit)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}
			printHistory(w, sessions)
			return nil
		})
	},
}

func printHistory(w io.Writer, sessions []store.PracticeSessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No practice sessions yet.")
		return
	}
	fmt.Fprintf(w, "%-16s  %-12s  %-8s  %-7s  %-8s  %s\n", "Ended", "Level", "Solved", "Time", "Source", "Submissions")
	fmt.Fprintln(w, rule)
	for _, s := range sessions {
		fmt.Fprintf(w, "%-16s  %-12s  %-8s  %-7s  %-8s  %d\n",
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Level,
			fmt.Sprintf("%d/%d", s.SolvedCount, s.Total),
			layout.FormatElapsed(int(s.Elapsed.Seconds())),
			s.Provenance,
			s.Submissions,
		)
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
