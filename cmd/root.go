package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Terminal coding practice with generated challenges",
	Long: "Code Arena serves batches of programming challenges at three levels, generated by a\n" +
		"language model or taken from a built-in sample set, and judges your solutions locally.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("db", "", "Path to SQLite database file (default: user data dir)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.String("llm-provider", "", "Model provider (anthropic, openai, gemini, openrouter, mock)")
	f.String("llm-model", "", "Model name for the selected provider")
	f.Duration("provision-timeout", 0, "Bound on one challenge generation call (default 15s)")
	f.Duration("load-timeout", 0, "How long the practice screen waits for challenges (default 20s)")
	f.Duration("judge-timeout", 0, "Bound on one judge run (default 60s)")
	f.Int("batch-size", 0, "Challenges per practice session (default 5)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
