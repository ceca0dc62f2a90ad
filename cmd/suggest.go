package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [draft]",
	Short: "Suggest follow-up sentences for a notice draft",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := newSuggestService(cfg, logger)
	if err != nil {
		return err
	}

	suggestions, err := svc.Suggest(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s\n", i+1, s)
	}
	return nil
}
