package config_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/codcodedob/aura/pkg/cli/config"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("console logger to stdout", func(t *testing.T) {
		logger := config.NewLoggerForTest("info", "console", "-")
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("json logger to stderr", func(t *testing.T) {
		logger := config.NewLoggerForTest("debug", "json", "stderr")
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("logger to file creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aura.log")
		logger := config.NewLoggerForTest("warn", "json", path)
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		defer closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		logger := config.NewLoggerForTest("verbose", "console", "-")
		_, err := logger.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		logger := config.NewLoggerForTest("info", "xml", "-")
		_, err := logger.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}

func TestOpenAIConfigure(t *testing.T) {
	t.Run("missing API key is rejected", func(t *testing.T) {
		openai := config.NewOpenAIForTest("", "gpt-4", "text-embedding-3-small")
		_, err := openai.Configure(context.Background())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("LogValue never exposes the API key", func(t *testing.T) {
		openai := config.NewOpenAIForTest("sk-secret-value", "gpt-4", "text-embedding-3-small")
		rendered := fmt.Sprintf("%v", openai.LogValue())
		gt.String(t, rendered).NotEqual("")
		gt.Bool(t, strings.Contains(rendered, "sk-secret-value")).False()
	})
}

func TestRepositoryConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		repoCfg := config.NewRepositoryForTest("memory", "", "")
		repo, err := repoCfg.Configure(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires project ID", func(t *testing.T) {
		repoCfg := config.NewRepositoryForTest("firestore", "", "")
		_, err := repoCfg.Configure(context.Background())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		repoCfg := config.NewRepositoryForTest("postgres", "", "")
		_, err := repoCfg.Configure(context.Background())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}
