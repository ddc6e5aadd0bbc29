package cli

import (
	"encoding/json"
	"fmt"

	"mflix-catalog/internal/catalog/domain/model"

	"github.com/spf13/cobra"
)

var (
	queryType      string
	queryGenre     string
	queryLimit     int
	queryPageToken string
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query one page of movies by type and genre",
	Long: `Fetches one page of movies matching --type and --genre, sorted by
type then genre and reduced to those two fields. Pass the printed
next-page token back with --page-token to continue.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryType, "type", "movie", "value of the type field")
	queryCmd.Flags().StringVar(&queryGenre, "genre", "Drama", "value of the genre field")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", model.DefaultPageLimit, "page size")
	queryCmd.Flags().StringVar(&queryPageToken, "page-token", "", "token from a previous page")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the page as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	req := model.PageRequest{Token: queryPageToken, Limit: queryLimit}
	page, err := uc.FetchPage(cmd.Context(), model.MoviesByGenreQuery(queryType, queryGenre), req)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal page: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(page.Items) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for i, row := range page.Items {
		cmd.Printf("  [%d] type=%s genre=%s\n", i+1, row.Type, row.Genre)
	}
	if page.Pagination.HasNext {
		cmd.Printf("Next page: --page-token %s\n", page.Pagination.NextToken)
	}
	return nil
}
