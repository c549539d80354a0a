package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordspark/wordspark/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the vocabulary word list",
}

var vocabSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the curated word list into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		store, err := vocab.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		added, err := store.Seed(context.Background())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Printf("Seeded %d new words into %s\n", added, dbPath)
		return nil
	},
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vocabulary words",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicFilter, _ := cmd.Flags().GetString("topic")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		store, err := vocab.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		entries, err := store.LoadAll(context.Background())
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No words found. Run `wordspark vocab seed` first.")
			return nil
		}

		// Header.
		fmt.Printf("%-16s  %-4s  %-12s  %s\n", "Word", "Lvl", "Topic", "Definition")
		fmt.Println(strings.Repeat("─", 80))

		for _, e := range entries {
			if topicFilter != "" && e.Topic != topicFilter {
				continue
			}
			topic := e.Topic
			if topic == "" {
				topic = "(general)"
			}
			def := e.Definition
			if len(def) > 44 {
				def = def[:44]
			}
			fmt.Printf("%-16s  %-4d  %-12s  %s\n", e.Word, e.Difficulty, topic, def)
		}
		return nil
	},
}

func init() {
	vocabListCmd.Flags().String("topic", "", "Only list words for this topic")

	vocabCmd.AddCommand(vocabSeedCmd)
	vocabCmd.AddCommand(vocabListCmd)
}
