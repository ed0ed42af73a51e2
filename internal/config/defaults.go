package config

import "os"

// Defaults matching the hosted deployment.
const (
	DefaultModel       = "gpt-5"
	DefaultTemperature = 0.4
	DefaultTitle       = "Home Inspection Analysis Report"
)

// ApplyDefaults sets default values for any zero values in cfg.
// Temperature 0 is indistinguishable from unset in YAML and is replaced as well.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = os.TempDir()
	}
	if cfg.Upload.MaxMemoryBytes == 0 {
		cfg.Upload.MaxMemoryBytes = 32 << 20
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = DefaultTemperature
	}
	if cfg.Export.Title == "" {
		cfg.Export.Title = DefaultTitle
	}
}
