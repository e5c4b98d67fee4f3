package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/codcodedob/aura/pkg/cli/config"
)

func writeAgentConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestAgentConfigure(t *testing.T) {
	t.Run("no file configured yields defaults", func(t *testing.T) {
		agent := config.NewAgentForTest("")
		opts, err := agent.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(0)
	})

	t.Run("valid file yields all options", func(t *testing.T) {
		path := writeAgentConfig(t, `
[prompt]
system = "You are a terse assistant."

[search]
threshold = 0.8
limit = 3
`)
		agent := config.NewAgentForTest(path)
		opts, err := agent.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(3)
	})

	t.Run("partial file yields only configured options", func(t *testing.T) {
		path := writeAgentConfig(t, `
[search]
limit = 10
`)
		agent := config.NewAgentForTest(path)
		opts, err := agent.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(1)
	})

	t.Run("threshold above 1 is rejected", func(t *testing.T) {
		path := writeAgentConfig(t, `
[search]
threshold = 1.5
`)
		agent := config.NewAgentForTest(path)
		_, err := agent.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("negative threshold is rejected", func(t *testing.T) {
		path := writeAgentConfig(t, `
[search]
threshold = -0.1
`)
		agent := config.NewAgentForTest(path)
		_, err := agent.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("non-positive limit is rejected", func(t *testing.T) {
		path := writeAgentConfig(t, `
[search]
limit = 0
`)
		agent := config.NewAgentForTest(path)
		_, err := agent.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("missing file is reported as not found", func(t *testing.T) {
		agent := config.NewAgentForTest(filepath.Join(t.TempDir(), "absent.toml"))
		_, err := agent.Configure()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})

	t.Run("malformed TOML is rejected", func(t *testing.T) {
		path := writeAgentConfig(t, `[search`)
		agent := config.NewAgentForTest(path)
		_, err := agent.Configure()
		gt.Value(t, err).NotNil()
	})
}
