package config

import "os"

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "FIXTASKDEF_INPUT",
		apply: func(c *Config, v string) {
			c.Input = v
		},
	},
	{
		envVar: "FIXTASKDEF_OUTPUT",
		apply: func(c *Config, v string) {
			c.Output = v
		},
	},
	{
		envVar: "FIXTASKDEF_LOG_LEVEL",
		apply: func(c *Config, v string) {
			c.LogLevel = v
		},
	},
	{
		envVar: "FIXTASKDEF_LOG_FORMAT",
		apply: func(c *Config, v string) {
			c.LogFormat = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
