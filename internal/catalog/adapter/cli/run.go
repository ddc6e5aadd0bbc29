package cli

import (
	"fmt"

	"mflix-catalog/internal/catalog/domain/model"

	"github.com/spf13/cobra"
)

var runPrint bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create the title index and build the drama cursor",
	Long: `Creates the ascending index on title, then builds a cursor over
movies with type "movie" and genre "Drama", sorted by type and genre and
projected to those two fields. The cursor is not read unless --print is set.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runPrint, "print", false, "drain the cursor and print every result")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := uc.Run(ctx)
	if err != nil {
		return err
	}
	defer res.Cursor.Close(ctx)

	cmd.Printf("Index created: %s\n", res.IndexName)
	if !runPrint {
		cmd.Println("Cursor ready.")
		return nil
	}

	n := 0
	for res.Cursor.Next(ctx) {
		var row model.MovieSummary
		if err := res.Cursor.Decode(&row); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
		cmd.Printf("{type: %q, genre: %q}\n", row.Type, row.Genre)
		n++
	}
	if err := res.Cursor.Err(); err != nil {
		return fmt.Errorf("cursor failed: %w", err)
	}
	cmd.Printf("%d result(s)\n", n)
	return nil
}
