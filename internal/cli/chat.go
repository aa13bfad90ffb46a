package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bridge/internal/domain"
)

var chatLang string

var chatCmd = &cobra.Command{
	Use:   "chat [file]",
	Short: "Ask questions about a document",
	Long: `Processes the document, then reads questions from standard input, one per
line. Answers come only from the document. Type /lang CODE to switch the answer
language, /prompts to list suggested questions, or /quit to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatLang, "lang", "l", "", "target language code (default: saved preference)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	ctx := context.Background()
	id, view, err := processFile(ctx, d, args[0], domain.LanguageCode(chatLang))
	if err != nil {
		return err
	}
	defer func() { _ = d.Workspaces.Delete(ctx, id) }()

	cmd.Printf("%s\n\n", view.Result.Summary.Purpose)

	state, err := d.Workspaces.Chat(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range state.Messages {
		cmd.Printf("bridge> %s\n", m.Text)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("you> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/prompts":
			state, err := d.Workspaces.Chat(ctx, id)
			if err != nil {
				return err
			}
			for _, p := range state.Prompts {
				cmd.Printf("  %s: %s\n", p.Label, p.Prompt)
			}
			continue
		case strings.HasPrefix(line, "/lang "):
			code := domain.LanguageCode(strings.TrimSpace(strings.TrimPrefix(line, "/lang ")))
			if _, err := d.Workspaces.SetChatLanguage(ctx, id, code); err != nil {
				cmd.Printf("bridge> %v\n", err)
				continue
			}
			cmd.Printf("bridge> (%s)\n", d.Catalog.DisplayName(code))
			continue
		}

		reply, err := d.Workspaces.SendChat(ctx, id, line)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		cmd.Printf("bridge> %s\n", reply.Reply)
	}
}
