package bookstat

import (
	"runtime"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestClampWorkers(t *testing.T) {
	maxWorkers := 2 * runtime.NumCPU()

	assert.Equal(t, 1, clampWorkers(-3))
	assert.Equal(t, 1, clampWorkers(0))
	assert.Equal(t, 1, clampWorkers(1))
	assert.Equal(t, maxWorkers, clampWorkers(maxWorkers))
	assert.Equal(t, maxWorkers, clampWorkers(maxWorkers+100))
}

func TestSetupDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setupDefaults()

	assert.Equal(t, runtime.NumCPU(), viper.GetInt("workers"))
	assert.Equal(t, FormatXML, viper.GetString("output_format"))
	assert.Equal(t, 30*time.Minute, viper.GetDuration("wait_ceiling"))
	assert.Equal(t, uint(64), viper.GetUint("shards"))
	assert.Equal(t, runtime.NumCPU(), viper.GetInt("t"))
}

func TestBindFlags(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	flags := pflag.NewFlagSet("stats", pflag.ContinueOnError)
	BindFlags(flags)
	err := flags.Parse([]string{"-t", "3", "--format", "json", "--wait-ceiling", "5s", "-o", "/tmp/out"})
	assert.Nil(t, err)

	assert.Equal(t, 3, viper.GetInt("workers"))
	assert.Equal(t, "json", viper.GetString("output_format"))
	assert.Equal(t, 5*time.Second, viper.GetDuration("wait_ceiling"))
	assert.Equal(t, "/tmp/out", viper.GetString("working_location"))
	assert.Equal(t, 10, viper.GetInt("top"))
}

func TestNewDriverOptions(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	d := NewDriver(
		WithWorkers(3),
		WithWorkingLocation("out"),
		WithFormat(FormatYAML),
		WithWaitCeiling(time.Second),
		WithShutdownGrace(time.Millisecond),
		WithShards(8),
		WithNormalizeCacheSize(0),
		WithProgress(true),
	)

	assert.Equal(t, 3, d.config.Workers)
	assert.Equal(t, "out", d.config.WorkingLocation)
	assert.Equal(t, FormatYAML, d.config.Format)
	assert.Equal(t, time.Second, d.config.WaitCeiling)
	assert.Equal(t, time.Millisecond, d.config.ShutdownGrace)
	assert.Equal(t, uint(8), d.config.Shards)
	assert.Equal(t, 0, d.config.NormalizeCacheSize)
	assert.True(t, d.config.Progress)

	d = NewDriver(WithWaitCeiling(0))
	assert.Equal(t, 30*time.Minute, d.config.WaitCeiling)
}

func TestNewDriverVerboseFromEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(log.InfoLevel)

	t.Setenv("BOOKSTAT_VERBOSE", "true")
	NewDriver()

	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
