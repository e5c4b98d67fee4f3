package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/codcodedob/aura/pkg/cli/config"
	"github.com/codcodedob/aura/pkg/usecase"
	"github.com/codcodedob/aura/pkg/utils/logging"
)

func cmdAsk() *cli.Command {
	var input string
	var callTimeout time.Duration
	var repoCfg config.Repository
	var openaiCfg config.OpenAI
	var agentCfg config.Agent

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Input text (reads stdin when omitted)",
			Destination: &input,
		},
		&cli.DurationFlag{
			Name:        "call-timeout",
			Usage:       "Timeout for each model call (0 disables)",
			Value:       60 * time.Second,
			Sources:     cli.EnvVars("AURA_CALL_TIMEOUT"),
			Destination: &callTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)
	flags = append(flags, agentCfg.Flags()...)

	return &cli.Command{
		Name:      "ask",
		Aliases:   []string{"a"},
		Usage:     "Run one conversation turn from the terminal",
		ArgsUsage: "[input]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if input == "" {
				input = strings.Join(c.Args().Slice(), " ")
			}
			if input == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return goerr.Wrap(err, "failed to read input from stdin")
				}
				input = strings.TrimSpace(string(data))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := openaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize OpenAI client")
			}

			ucOpts, err := agentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load agent configuration")
			}
			ucOpts = append(ucOpts, usecase.WithCallTimeout(callTimeout))

			uc := usecase.New(repo, llmClient, ucOpts...)

			answer, err := uc.Ask.Ask(ctx, input)
			if err != nil {
				return goerr.Wrap(err, "ask failed")
			}

			color.New(color.FgCyan).Fprintln(os.Stdout, answer) //nolint:errcheck // terminal output

			return nil
		},
	}
}
