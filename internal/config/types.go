package config

// Config is the root configuration structure.
// Every field can also be set from the environment, e.g.
// BORDERS_BORDER_COLOR or BORDERS_OVERVIEW_POLL_INTERVAL.
type Config struct {
	Border      BorderConfig   `yaml:"border" json:"border" toml:"border"`
	Overview    OverviewConfig `yaml:"overview" json:"overview" toml:"overview"`
	Socket      string         `yaml:"socket,omitempty" json:"socket,omitempty" toml:"socket,omitempty"` // Command socket path
	DebugOutput bool           `yaml:"debugOutput" json:"debugOutput" toml:"debugOutput" split_words:"true"` // Initial verbose flag
}

// BorderConfig controls how the outline is drawn
type BorderConfig struct {
	Width float64 `yaml:"width" json:"width" toml:"width"`
	Color string  `yaml:"color" json:"color" toml:"color"` // "#RRGGBB" or "#RRGGBBAA"
	Level int     `yaml:"level" json:"level" toml:"level"` // Compositor stacking level
}

// OverviewConfig holds the Mission Control polling intervals.
// Durations use Go syntax, e.g. "100ms".
type OverviewConfig struct {
	InitialDelay string `yaml:"initialDelay" json:"initialDelay" toml:"initialDelay" split_words:"true"`
	PollInterval string `yaml:"pollInterval" json:"pollInterval" toml:"pollInterval" split_words:"true"`
}
