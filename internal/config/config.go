package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the hwdrift configuration.
type Config struct {
	// ExportPath is the baseline export file location.
	ExportPath string `mapstructure:"export_path"`
	// HistoryPath is the sqlite export history database.
	HistoryPath string `mapstructure:"history_path"`
	// HistoryKeep caps how many exports the history retains; 0 disables
	// pruning.
	HistoryKeep int    `mapstructure:"history_keep"`
	NoColor     bool   `mapstructure:"no_color"`
	LogLevel    string `mapstructure:"log_level"`
}

// Load reads configuration from file, environment, and defaults. A missing
// config file is fine; defaults apply.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".hwdrift"))
		}
	}

	viper.SetDefault("export_path", "serials_export.txt")
	viper.SetDefault("history_path", defaultHistoryPath())
	viper.SetDefault("history_keep", 50)
	viper.SetDefault("no_color", false)
	viper.SetDefault("log_level", "info")

	viper.SetEnvPrefix("HWDRIFT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Only an absent file during the default search is ignorable. A
		// file that exists but cannot be parsed is an error no matter how
		// it was found.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hwdrift-history.db"
	}
	return filepath.Join(home, ".hwdrift", "history.db")
}
