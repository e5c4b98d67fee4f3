package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/codcodedob/aura/pkg/cli/config"
	httpctrl "github.com/codcodedob/aura/pkg/controller/http"
	"github.com/codcodedob/aura/pkg/usecase"
	"github.com/codcodedob/aura/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var callTimeout time.Duration
	var repoCfg config.Repository
	var openaiCfg config.OpenAI
	var agentCfg config.Agent

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AURA_ADDR"),
			Destination: &addr,
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
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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
			logging.Default().Info("OpenAI client configured", "openai", openaiCfg)

			ucOpts, err := agentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load agent configuration")
			}
			ucOpts = append(ucOpts, usecase.WithCallTimeout(callTimeout))

			uc := usecase.New(repo, llmClient, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
