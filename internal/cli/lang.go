package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bridge/internal/domain"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the default target language",
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the default target language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := requireDeps()
		if err != nil {
			return err
		}
		code := d.Settings.TargetLanguage()
		cmd.Printf("%s\t%s\n", code, d.Catalog.DisplayName(code))
		return nil
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set [code]",
	Short: "Save the default target language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := requireDeps()
		if err != nil {
			return err
		}
		code := domain.LanguageCode(args[0])
		if err := d.Settings.SetTargetLanguage(context.Background(), code); err != nil {
			return fmt.Errorf("failed to save language %q: %w", args[0], err)
		}
		cmd.Printf("Default language set to %s\n", d.Catalog.DisplayName(code))
		return nil
	},
}

var langListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := requireDeps()
		if err != nil {
			return err
		}
		current := d.Settings.TargetLanguage()
		for _, opt := range d.Catalog.Options() {
			marker := " "
			if opt.Code == current {
				marker = "*"
			}
			cmd.Printf("%s %s\t%s\n", marker, opt.Code, opt.Name)
		}
		return nil
	},
}

func init() {
	langCmd.AddCommand(langGetCmd, langSetCmd, langListCmd)
	rootCmd.AddCommand(langCmd)
}
