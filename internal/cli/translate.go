package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bridge/internal/domain"
	"bridge/internal/parser"
	"bridge/internal/service"
)

var (
	translateLang string
	translateJSON bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [file]",
	Short: "Translate and summarize a document",
	Long: `Sends a PDF or image to the translation service and prints the plain-language
summary followed by the translated text. Uses the saved default language unless
--lang is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&translateLang, "lang", "l", "", "target language code (default: saved preference)")
	translateCmd.Flags().BoolVar(&translateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	ctx := context.Background()
	id, view, err := processFile(ctx, d, args[0], domain.LanguageCode(translateLang))
	if err != nil {
		return err
	}
	defer func() { _ = d.Workspaces.Delete(ctx, id) }()

	if translateJSON {
		data, err := json.MarshalIndent(view.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printSummary(cmd, view)
	return nil
}

// processFile opens a workspace and runs one attempt on the file at path.
// The caller deletes the workspace.
func processFile(ctx context.Context, d *Deps, path string, lang domain.LanguageCode) (uuid.UUID, *service.WorkspaceView, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	created, err := d.Workspaces.Create(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	id := created.Workspace.ID

	view, err := d.Workspaces.Process(ctx, id, &service.ProcessInput{
		FileName:       filepath.Base(path),
		Body:           f,
		TargetLanguage: lang,
	})
	if err != nil {
		_ = d.Workspaces.Delete(ctx, id)
		return uuid.Nil, nil, fmt.Errorf("processing failed: %s", service.FailureMessage(err))
	}
	return id, view, nil
}

func printSummary(cmd *cobra.Command, view *service.WorkspaceView) {
	result := view.Result
	sections := parser.Sections(result.Summary)

	cmd.Printf("Detected language: %s -> %s\n\n", result.DetectedLanguage, result.TargetLanguage)
	cmd.Println("PURPOSE")
	cmd.Printf("  %s\n\n", result.Summary.Purpose)

	printSection(cmd, "ACTIONS", sections.Actions, true)
	printSection(cmd, "DUE DATES", sections.DueDates, false)
	printSection(cmd, "COSTS", sections.Costs, false)
	printSection(cmd, "IMPORTANT INFO", sections.ImportantInfo, false)

	cmd.Println("TRANSLATION")
	cmd.Println(strings.TrimSpace(parser.PlainText(result.TranslationHTML)))
}

func printSection(cmd *cobra.Command, title string, s domain.SummarySection, numbered bool) {
	cmd.Println(title)
	if s.IsEmpty {
		cmd.Println("  None")
		cmd.Println()
		return
	}
	for i, item := range s.Items {
		if numbered {
			cmd.Printf("  %d. %s\n", i+1, item)
		} else {
			cmd.Printf("  - %s\n", item)
		}
	}
	cmd.Println()
}
