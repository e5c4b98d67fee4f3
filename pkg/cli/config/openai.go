package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds configuration for the OpenAI LLM client
type OpenAI struct {
	apiKey         string
	model          string
	embeddingModel string
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("AURA_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &o.apiKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model for completion",
			Value:       "gpt-4",
			Sources:     cli.EnvVars("AURA_OPENAI_MODEL"),
			Destination: &o.model,
		},
		&cli.StringFlag{
			Name:        "openai-embedding-model",
			Usage:       "OpenAI model for embedding",
			Value:       "text-embedding-3-small",
			Sources:     cli.EnvVars("AURA_OPENAI_EMBEDDING_MODEL"),
			Destination: &o.embeddingModel,
		},
	}
}

// LogValue implements slog.LogValuer; the API key is never logged.
func (o OpenAI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", o.model),
		slog.String("embedding_model", o.embeddingModel),
		slog.Bool("api_key_configured", o.apiKey != ""),
	)
}

// Configure creates a new OpenAI LLM client from the configured flags.
func (o *OpenAI) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if o.apiKey == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "openai-api-key is required")
	}

	client, err := openai.New(ctx, o.apiKey,
		openai.WithModel(o.model),
		openai.WithEmbeddingModel(o.embeddingModel),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client")
	}

	return client, nil
}
