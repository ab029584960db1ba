package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes one import, or the whole database.
var dropCmd = &cobra.Command{
	Use:   "drop [import-prefix]",
	Short: "Delete an import or the whole database",
	Long: `With an import hash prefix, delete that import and its rosters.
Without one, permanently delete the SQLite database. Re-import your files afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropImport(args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropImport(prefix string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	imp, err := resolveImport(db, prefix)
	if err != nil {
		return err
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete import %s (%s, %d players).\n", imp.Hash[:12], imp.Source, imp.Players)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := db.DeleteImport(imp.Hash); err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted import %s\n", imp.Hash[:12])
	return nil
}
