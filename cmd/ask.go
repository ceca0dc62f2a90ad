package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single cultivation question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	svc, _, err := newRAGService(cfg, logger)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	result, err := svc.Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)
	if len(result.PDFLinks) > 0 {
		fmt.Println()
		for _, link := range result.PDFLinks {
			fmt.Printf("- %s: %s\n", link.Title, link.URL)
		}
	}
	return nil
}
