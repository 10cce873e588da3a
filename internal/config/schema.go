package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Defaults DefaultsConfig `toml:"defaults"`
	Tail     TailConfig     `toml:"tail"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds server connection settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// Timeout returns the request timeout as a duration.
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// DefaultsConfig holds default playback settings.
type DefaultsConfig struct {
	Player      string `toml:"player"`
	VolumeStep  int    `toml:"volume_step"`
	SkipSeconds int    `toml:"skip_seconds"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Interval   int    `toml:"interval"`
	Format     string `toml:"format"`
	Timestamps bool   `toml:"timestamps"`
	Plain      bool   `toml:"plain"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Verbose bool   `toml:"verbose"`
	File    string `toml:"file"`
}
