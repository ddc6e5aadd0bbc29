package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"mflix-catalog/internal/catalog/domain/model"

	"github.com/spf13/cobra"
)

var (
	indexFields     []string
	indexDirections []int
	indexName       string
	indexUnique     bool
	indexSparse     bool
	indexListJSON   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage indexes on the movies collection",
}

var indexCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an index",
	Long: `Creates an index from one or more --field flags. A single --direction
applies to every field; otherwise give one direction per field.`,
	Args: cobra.NoArgs,
	RunE: runIndexCreate,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexes",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

var indexDropCmd = &cobra.Command{
	Use:   "drop [name]",
	Short: "Drop an index by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDrop,
}

func init() {
	indexCreateCmd.Flags().StringSliceVarP(&indexFields, "field", "f", []string{"title"}, "indexed field (repeatable)")
	indexCreateCmd.Flags().IntSliceVarP(&indexDirections, "direction", "d", []int{1}, "1 for ascending, -1 for descending")
	indexCreateCmd.Flags().StringVar(&indexName, "name", "", "index name (server default when empty)")
	indexCreateCmd.Flags().BoolVar(&indexUnique, "unique", false, "reject duplicate keys")
	indexCreateCmd.Flags().BoolVar(&indexSparse, "sparse", false, "skip documents missing the fields")

	indexListCmd.Flags().BoolVar(&indexListJSON, "json", false, "output indexes as JSON")

	indexCmd.AddCommand(indexCreateCmd, indexListCmd, indexDropCmd)
	rootCmd.AddCommand(indexCmd)
}

// buildIndexSpec pairs fields with directions
func buildIndexSpec(fields []string, directions []int) (model.IndexSpec, error) {
	if len(directions) != 1 && len(directions) != len(fields) {
		return model.IndexSpec{}, fmt.Errorf("got %d directions for %d fields", len(directions), len(fields))
	}

	spec := model.IndexSpec{Keys: make([]model.IndexKey, 0, len(fields))}
	for i, field := range fields {
		dir := directions[0]
		if len(directions) > 1 {
			dir = directions[i]
		}
		spec.Keys = append(spec.Keys, model.IndexKey{Field: field, Direction: model.SortDirection(dir)})
	}
	return spec, nil
}

func runIndexCreate(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	spec, err := buildIndexSpec(indexFields, indexDirections)
	if err != nil {
		return err
	}
	spec.Name = indexName
	spec.Unique = indexUnique
	spec.Sparse = indexSparse

	name, err := uc.CreateIndex(cmd.Context(), spec)
	if err != nil {
		return err
	}
	cmd.Printf("Index created: %s\n", name)
	return nil
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	indexes, err := uc.ListIndexes(cmd.Context())
	if err != nil {
		return err
	}

	if indexListJSON {
		data, err := json.MarshalIndent(indexes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal indexes: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(indexes) == 0 {
		cmd.Println("No indexes found.")
		return nil
	}
	for _, idx := range indexes {
		keys := make([]string, 0, len(idx.Keys))
		for _, k := range idx.Keys {
			keys = append(keys, fmt.Sprintf("%s: %d", k.Field, k.Direction))
		}
		line := fmt.Sprintf("  %s {%s}", idx.Name, strings.Join(keys, ", "))
		if idx.Unique {
			line += " unique"
		}
		if idx.Sparse {
			line += " sparse"
		}
		cmd.Println(line)
	}
	return nil
}

func runIndexDrop(cmd *cobra.Command, args []string) error {
	uc, err := catalog()
	if err != nil {
		return err
	}

	if err := uc.DropIndex(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Index dropped: %s\n", args[0])
	return nil
}
