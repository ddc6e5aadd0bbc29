package cli

import (
	"mflix-catalog/internal/catalog/domain/model"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small fixed set of movies",
	Long:  `Inserts sample movies so run and query have something to return on an empty database.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	n, err := uc.Seed(cmd.Context(), model.SampleMovies())
	if err != nil {
		return err
	}
	cmd.Printf("Inserted %d movies\n", n)
	return nil
}
