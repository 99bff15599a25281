package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"zonesync/internal/provider"
)

type APIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	User           string `yaml:"user"`
	Key            string `yaml:"key"`
	Private        bool   `yaml:"private"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type SyncConfig struct {
	ZoneDir           string `yaml:"zone_dir"`
	MinDomains        int    `yaml:"min_domains"`
	MasterIP          string `yaml:"master_ip"`
	TransferFrequency int    `yaml:"transfer_frequency"`
}

type CheckConfig struct {
	HostType        string   `yaml:"host_type"`
	WarningPercent  *float64 `yaml:"warning_percent"`
	CriticalPercent *float64 `yaml:"critical_percent"`
	RenewalDay      int      `yaml:"renewal_day"`
}

type Config struct {
	API   APIConfig   `yaml:"api"`
	Sync  SyncConfig  `yaml:"sync"`
	Check CheckConfig `yaml:"check"`
}

// Load reads a yaml config file, applies defaults and validates what can
// be validated without knowing which command will run. A missing file is
// not an error when optional is set; flags can supply everything.
func Load(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := provider.ValidateHostType(cfg.Check.HostType); err != nil {
		return nil, err
	}
	if cfg.Sync.TransferFrequency <= 0 {
		return nil, fmt.Errorf("sync.transfer_frequency must be positive")
	}
	if cfg.Check.RenewalDay < 0 || cfg.Check.RenewalDay > 31 {
		return nil, fmt.Errorf("check.renewal_day must be between 0 and 31")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.Sync.MinDomains == 0 {
		c.Sync.MinDomains = 10
	}
	if c.Sync.TransferFrequency == 0 {
		c.Sync.TransferFrequency = 15
	}
	if c.Check.HostType == "" {
		c.Check.HostType = provider.HostTypeHardware
	}
}
