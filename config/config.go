// Package config holds runtime settings. There are no flags or config
// files; everything comes from QUARTO_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigSeed            = "seed"
	ConfigWinThreshold    = "win-threshold"
	ConfigHumanName       = "human-name"
	ConfigComputerName    = "computer-name"
	ConfigAutoplayMatches = "autoplay-matches"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayLogfile = "autoplay-logfile"
	ConfigAutoplayAnalyze = "autoplay-analyze"
	ConfigReadlineHistory = "readline-history"
)

type Config struct {
	*viper.Viper
}

func New() *Config {
	return &Config{Viper: viper.New()}
}

// Load sets defaults and binds the environment. QUARTO_WIN_THRESHOLD sets
// win-threshold, and so on.
func (c *Config) Load() {
	c.SetDefault(ConfigDebug, false)
	// 0 means seed from system entropy.
	c.SetDefault(ConfigSeed, 0)
	c.SetDefault(ConfigWinThreshold, 3)
	c.SetDefault(ConfigHumanName, "Human")
	c.SetDefault(ConfigComputerName, "Computer")
	c.SetDefault(ConfigAutoplayMatches, 100)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayLogfile, "")
	// A round log to summarize instead of playing.
	c.SetDefault(ConfigAutoplayAnalyze, "")
	c.SetDefault(ConfigReadlineHistory, "/tmp/quarto_readline.tmp")

	c.SetEnvPrefix("quarto")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
}

// SanitizedSettings returns every setting for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
