package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      9000,
			TimeoutMS: 10000,
		},
		Defaults: DefaultsConfig{
			VolumeStep:  5,
			SkipSeconds: 10,
		},
		Tail: TailConfig{
			Interval: 1000,
		},
		TUI: TUIConfig{
			Theme:           "mocha",
			RefreshInterval: 1000,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Server
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.TimeoutMS == 0 {
		c.Server.TimeoutMS = d.Server.TimeoutMS
	}

	// Defaults
	if c.Defaults.VolumeStep == 0 {
		c.Defaults.VolumeStep = d.Defaults.VolumeStep
	}
	if c.Defaults.SkipSeconds == 0 {
		c.Defaults.SkipSeconds = d.Defaults.SkipSeconds
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
}
