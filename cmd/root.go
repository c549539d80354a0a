package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wordspark/wordspark/internal/vocab"
)

var rootCmd = &cobra.Command{
	Use:   "wordspark",
	Short: "Vocabulary-building chat for young readers",
	Long:  "WordSpark — collaborative stories and fun facts that teach kids (ages 6-10) new words as they read.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDSPARK_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then WORDSPARK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return vocab.DefaultDBPath()
}
