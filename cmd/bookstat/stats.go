package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bcongdon/bookstat"
)

var statsCmd = &cobra.Command{
	Use:   "stats [directory] [attribute]",
	Short: "Compute statistics for one attribute over a directory",
	Long: `Stats aggregates one attribute over every *.json file directly inside
directory and writes the ranked counts to the output location. Directory and
output may be local paths or s3:// URIs.

Missing arguments are read from standard input.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		directory, err := argOrPrompt(args, 0, in, out, "Enter the path to the directory with JSON files: ")
		if err != nil {
			return err
		}
		attribute, err := argOrPrompt(args, 1, in, out,
			fmt.Sprintf("Enter the attribute name for statistics (%s): ", strings.Join(bookstat.SupportedAttributes(), ", ")))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		driver := bookstat.NewDriver()
		result, err := driver.ProcessDirectory(ctx, directory, attribute, viper.GetInt("workers"))
		if err != nil {
			return err
		}
		return result.PrintSummary(out, viper.GetInt("top"))
	},
}

func init() {
	bookstat.BindFlags(statsCmd.Flags())

	rootCmd.AddCommand(statsCmd)
}

// argOrPrompt returns args[i], or a line read from in after writing prompt
// to out.
func argOrPrompt(args []string, i int, in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
