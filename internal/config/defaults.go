// Package config provides configuration loading and defaults for habitwatch.
package config

// DefaultDataDir is the default location of the habitwatch data directory.
const DefaultDataDir = "~/.local/share/habitwatch"

// DefaultConfigDir is the default location for habitwatch configuration.
const DefaultConfigDir = "~/.config/habitwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "habitwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultSeed controls whether starter habits are created in an empty database.
const DefaultSeed = true

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultWatch holds the default reminder loop settings.
var DefaultWatch = Watch{
	IntervalMinutes: 30,
	RemindAfterHour: 18,
}

// DefaultStats holds the default analysis windows, in days.
var DefaultStats = Stats{
	RateDays:     30,
	WeekdayDays:  28,
	MomentumDays: 7,
}
