package foundry

import (
	"strings"
	"time"

	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

const (
	DefaultAPIVersion   = "2025-05-15-preview"
	DefaultScope        = "https://ai.azure.com/.default"
	DefaultPollInterval = time.Second
)

/*
Config points the client at one project of the agent service.
*/
type Config struct {
	Endpoint     string
	APIVersion   string
	Scopes       []string
	PollInterval time.Duration
}

func (cfg Config) validate() (Config, error) {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")

	if cfg.Endpoint == "" {
		return cfg, errors.NewErrMissingConfig("foundry.endpoint", "PROJECT_ENDPOINT")
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{DefaultScope}
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return cfg, nil
}
