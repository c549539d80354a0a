package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wordspark/wordspark/internal/chat"
	"github.com/wordspark/wordspark/internal/llm"
	"github.com/wordspark/wordspark/internal/vocab"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with WordSpark in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func init() {
	chatCmd.Flags().String("mode", "story", "Conversation mode: story or facts")
}

// Kid-friendly palette, shared with nothing: the REPL is the only
// terminal surface.
var (
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6")).
			Bold(true)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#14B8A6")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F97316")).
			Bold(true)
)

// runChat drives a local REPL against the conversation engine.
func runChat(cmd *cobra.Command) error {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// The bare root command dispatches here without the flag registered.
	modeFlag, _ := cmd.Flags().GetString("mode")
	if modeFlag == "" {
		modeFlag = "story"
	}
	mode := chat.Mode(modeFlag)
	if mode != chat.ModeStory && mode != chat.ModeFacts {
		return fmt.Errorf("unknown mode %q: want story or facts", modeFlag)
	}

	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	store, err := vocab.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open vocabulary database: %w", err)
	}
	defer store.Close()

	if count, err := store.Count(ctx); err != nil {
		return fmt.Errorf("count vocabulary: %w", err)
	} else if count == 0 {
		if _, err := store.Seed(ctx); err != nil {
			return fmt.Errorf("seed vocabulary: %w", err)
		}
	}
	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	llmCfg, err := loadLLMConfig()
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}

	engine := chat.New(provider, vocab.NewBank(entries), chat.DefaultConfig(), logger)

	fmt.Println(botStyle.Render("WordSpark") + " — " + string(mode) + " mode")
	fmt.Println(hintStyle.Render("Tell me a topic to begin. Ctrl+D to quit."))
	fmt.Println()

	session := chat.NewSessionData()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		resp := engine.HandleTurn(ctx, chat.TurnRequest{
			Message:     message,
			Mode:        mode,
			SessionData: session,
		})
		session = resp.SessionData

		fmt.Println()
		fmt.Println(botStyle.Render("spark> ") + resp.Response)
		if q := resp.VocabQuestion; q != nil {
			fmt.Println()
			fmt.Println(questionStyle.Render(renderQuestion(q)))
		}
		if resp.SuggestedTheme != "" {
			fmt.Println(hintStyle.Render("(maybe try: " + resp.SuggestedTheme + ")"))
		}
		fmt.Println()
	}
}

func renderQuestion(q *chat.VocabQuestion) string {
	var b strings.Builder
	b.WriteString(q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n  %c) %s", 'A'+i, opt)
	}
	return b.String()
}
