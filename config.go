package bookstat

import (
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func loadConfig() {
	viper.SetConfigName("bookstatrc")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.bookstat")

	setupDefaults()

	viper.ReadInConfig()

	viper.SetEnvPrefix("bookstat")
	viper.AutomaticEnv()
}

func setupDefaults() {
	defaultSettings := map[string]interface{}{
		"workers":              runtime.NumCPU(),
		"working_location":     ".",
		"output_format":        FormatXML,
		"wait_ceiling":         30 * time.Minute, // Longest wait for workers before ranking partial results
		"shutdown_grace":       time.Minute,      // How long cancelled workers get to stop
		"shards":               64,               // Number of aggregator shards
		"normalize_cache_size": defaultNormalizeCacheSize,
		"progress":             false,
		"verbose":              false,
		"top":                  10, // Rows printed in the console summary
	}
	for key, value := range defaultSettings {
		viper.SetDefault(key, value)
	}

	aliases := map[string]string{
		"verbose":          "v",
		"working_location": "o",
		"workers":          "t",
	}
	for key, alias := range aliases {
		viper.RegisterAlias(alias, key)
	}
}

// BindFlags registers the command-line flags shared by bookstat commands on
// flags and binds them to their configuration keys, so a flag set on the
// command line overrides the environment and config file.
func BindFlags(flags *pflag.FlagSet) {
	flags.IntP("threads", "t", runtime.NumCPU(), "number of worker threads (clamped to 1..2x CPUs)")
	flags.StringP("output", "o", ".", "directory (local or s3://) the statistics file is written to")
	flags.StringP("format", "f", FormatXML, "output format: xml, json or yaml")
	flags.Duration("wait-ceiling", 30*time.Minute, "maximum time to wait for workers before ranking partial results")
	flags.Bool("progress", false, "show a progress bar while parsing")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Int("top", 10, "number of ranked values printed to the console (0 for all)")

	bindings := map[string]string{
		"workers":          "threads",
		"working_location": "output",
		"output_format":    "format",
		"wait_ceiling":     "wait-ceiling",
		"progress":         "progress",
		"verbose":          "verbose",
		"top":              "top",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}
