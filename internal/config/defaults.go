package config

const (
	DefaultConfigFile = ".fixtaskdef.yaml"
	DefaultInput      = "task-definition-frontend-current.json"
	DefaultOutput     = "task-definition-frontend-new.json"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}
