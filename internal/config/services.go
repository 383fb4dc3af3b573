package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceEndpoints holds the base URLs of every pipeline service.
// Defaults follow the local port layout; an optional YAML file or
// environment variables override individual entries.
type ServiceEndpoints struct {
	Gateway      string `yaml:"gateway"`
	Orchestrator string `yaml:"orchestrator"`
	Trends       string `yaml:"trends"`
	Script       string `yaml:"script"`
	Voice        string `yaml:"voice"`
	Video        string `yaml:"video"`
	Upload       string `yaml:"upload"`
	Analytics    string `yaml:"analytics"`
}

// Timeouts holds per-stage orchestration timeouts. Video encoding is by
// far the slowest stage; the defaults are deliberately generous.
type Timeouts struct {
	Trends    time.Duration `yaml:"trends"`
	Script    time.Duration `yaml:"script"`
	Voice     time.Duration `yaml:"voice"`
	Video     time.Duration `yaml:"video"`
	Upload    time.Duration `yaml:"upload"`
	Analytics time.Duration `yaml:"analytics"`
	Health    time.Duration `yaml:"health"`
}

// Services is the full wiring config for the pipeline.
type Services struct {
	Endpoints ServiceEndpoints `yaml:"endpoints"`
	Timeouts  Timeouts         `yaml:"timeouts"`
}

// DefaultServices returns the local development wiring.
func DefaultServices() Services {
	return Services{
		Endpoints: ServiceEndpoints{
			Gateway:      GetEnvOrDefault("GATEWAY_URL", "http://localhost:8000"),
			Orchestrator: GetEnvOrDefault("ORCHESTRATOR_URL", "http://localhost:3000"),
			Trends:       GetEnvOrDefault("TRENDS_SERVICE_URL", "http://localhost:3001"),
			Script:       GetEnvOrDefault("SCRIPT_SERVICE_URL", "http://localhost:3002"),
			Voice:        GetEnvOrDefault("VOICE_SERVICE_URL", "http://localhost:3003"),
			Video:        GetEnvOrDefault("VIDEO_SERVICE_URL", "http://localhost:3004"),
			Upload:       GetEnvOrDefault("UPLOAD_SERVICE_URL", "http://localhost:3005"),
			Analytics:    GetEnvOrDefault("ANALYTICS_SERVICE_URL", "http://localhost:3006"),
		},
		Timeouts: Timeouts{
			Trends:    30 * time.Second,
			Script:    2 * time.Minute,
			Voice:     3 * time.Minute,
			Video:     15 * time.Minute,
			Upload:    30 * time.Minute,
			Analytics: 30 * time.Second,
			Health:    5 * time.Second,
		},
	}
}

// LoadServices reads the wiring config, starting from defaults and
// overlaying the YAML file at path when it exists.
func LoadServices(path string) (Services, error) {
	services := DefaultServices()

	if path == "" {
		return services, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services, nil
		}
		return services, fmt.Errorf("read services config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &services); err != nil {
		return services, fmt.Errorf("parse services config %s: %w", path, err)
	}

	return services, nil
}
