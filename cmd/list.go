package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored imports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	imports, err := db.ListImports()
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}
	if len(imports) == 0 {
		fmt.Fprintln(os.Stdout, "No imports stored yet. Run 'nhllineup import <skaters.csv>' to add one.")
		return nil
	}
	report.PrintImportList(os.Stdout, imports)
	return nil
}
