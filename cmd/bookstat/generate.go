package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
	"github.com/bcongdon/bookstat/internal/pkg/bookgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [directory]",
	Short: "Write synthetic book record files",
	Long: `Generate writes randomly generated book record files into directory, for
trying out and load testing the stats command. The same seed always produces
the same files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		files, _ := flags.GetInt("files")
		books, _ := flags.GetInt("books")
		invalid, _ := flags.GetInt("invalid")
		seed, _ := flags.GetInt64("seed")

		dir := args[0]
		fs := bookfs.InferFilesystem(dir)
		paths, err := bookgen.Generate(fs, dir, bookgen.Options{
			Files:        files,
			BooksPerFile: books,
			InvalidFiles: invalid,
			Seed:         seed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s\n", len(paths), dir)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("files", 10, "number of record files")
	generateCmd.Flags().Int("books", 1000, "books per file")
	generateCmd.Flags().Int("invalid", 0, "number of additional malformed files")
	generateCmd.Flags().Int64("seed", 1, "random seed")

	rootCmd.AddCommand(generateCmd)
}
