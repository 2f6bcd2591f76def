package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codearena/arena/internal/app"
	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
	practicescreen "github.com/codearena/arena/internal/screens/practice"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("level")
		level, ok := challenge.ParseLevel(raw)
		if !ok {
			return fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", raw)
		}
		return runApp(cmd, level)
	},
}

func init() {
	practiceCmd.Flags().StringP("level", "l", "beginner", "Level: beginner, intermediate or advanced")
}

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty level opens a practice session on top of the home screen.
func runApp(cmd *cobra.Command, level challenge.Level) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupFileLogging(s)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer st.Close()
	repo := st.EventRepo()

	svc, err := buildServices(cmd.Context(), s, repo, logger)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Practice: practicescreen.Deps{
			Batches:      svc.Provision,
			Judge:        judge.NewLocalJudge(judge.WithJudgeLogger(logger)),
			EventRepo:    repo,
			LoadTimeout:  s.LoadTimeout,
			JudgeTimeout: s.JudgeTimeout,
			Logger:       logger,
		},
		EventRepo:       repo,
		ModelConfigured: svc.ModelConfigured,
		StartLevel:      level,
		Logger:          logger,
	})
}
