package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/codcodedob/aura/pkg/usecase"
)

// Agent holds the optional TOML configuration overriding the agent's
// persona prompt and retrieval parameters.
type Agent struct {
	path string
}

// agentFile is the TOML representation of the agent configuration
type agentFile struct {
	Prompt struct {
		System string `toml:"system"`
	} `toml:"prompt"`
	Search struct {
		Threshold *float64 `toml:"threshold"`
		Limit     *int     `toml:"limit"`
	} `toml:"search"`
}

// Flags returns CLI flags for agent configuration
func (a *Agent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to agent configuration TOML file",
			Sources:     cli.EnvVars("AURA_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure parses and validates the configuration file, returning use case
// options. Returns no options when no file is configured; the built-in
// defaults apply.
func (a *Agent) Configure() ([]usecase.Option, error) {
	if a.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "agent configuration not found",
				goerr.V(ConfigPathKey, a.path),
			)
		}
		return nil, goerr.Wrap(err, "failed to read agent configuration",
			goerr.V(ConfigPathKey, a.path),
		)
	}

	var file agentFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse agent configuration",
			goerr.V(ConfigPathKey, a.path),
		)
	}

	var opts []usecase.Option
	if file.Prompt.System != "" {
		opts = append(opts, usecase.WithSystemPrompt(file.Prompt.System))
	}
	if file.Search.Threshold != nil {
		t := *file.Search.Threshold
		if t < 0 || t > 1 {
			return nil, goerr.Wrap(ErrInvalidConfig, "search threshold must be between 0 and 1",
				goerr.V("threshold", t),
			)
		}
		opts = append(opts, usecase.WithSimilarityThreshold(t))
	}
	if file.Search.Limit != nil {
		l := *file.Search.Limit
		if l <= 0 {
			return nil, goerr.Wrap(ErrInvalidConfig, "search limit must be positive",
				goerr.V("limit", l),
			)
		}
		opts = append(opts, usecase.WithSearchLimit(l))
	}

	return opts, nil
}
