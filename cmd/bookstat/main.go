// Package main is the entry point for the bookstat CLI.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bookstat CLI.
var rootCmd = &cobra.Command{
	Use:   "bookstat",
	Short: "Frequency statistics over directories of JSON book records",
	Long: `bookstat reads every *.json file in a directory, each holding an array of
book records, and counts how often each value of one attribute (title, author,
year_published or genre) occurs. The ranked counts are written to a
statistics_by_<attribute> file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookstatrc or ~/.bookstat/bookstatrc)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
