package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level habitwatch configuration.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	Seed    bool   `mapstructure:"seed"`
	Output  Output `mapstructure:"output"`
	Watch   Watch  `mapstructure:"watch"`
	Stats   Stats  `mapstructure:"stats"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Watch defines the behavior of the background reminder loop.
type Watch struct {
	IntervalMinutes int `mapstructure:"interval_minutes"`
	RemindAfterHour int `mapstructure:"remind_after_hour"`
}

// Stats defines the default windows used by the stats views.
type Stats struct {
	RateDays     int `mapstructure:"rate_days"`
	WeekdayDays  int `mapstructure:"weekday_days"`
	MomentumDays int `mapstructure:"momentum_days"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("seed", DefaultSeed)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("watch.interval_minutes", DefaultWatch.IntervalMinutes)
	v.SetDefault("watch.remind_after_hour", DefaultWatch.RemindAfterHour)
	v.SetDefault("stats.rate_days", DefaultStats.RateDays)
	v.SetDefault("stats.weekday_days", DefaultStats.WeekdayDays)
	v.SetDefault("stats.momentum_days", DefaultStats.MomentumDays)

	v.SetEnvPrefix("HABITWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database for the given config.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
