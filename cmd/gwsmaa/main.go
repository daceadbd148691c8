// Package main provides the gwsmaa server entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codeBunny2022/gwsmaa/agent"
	"github.com/codeBunny2022/gwsmaa/config"
	"github.com/codeBunny2022/gwsmaa/internal/logging"
	"github.com/codeBunny2022/gwsmaa/llm"
	"github.com/codeBunny2022/gwsmaa/server"
	"github.com/codeBunny2022/gwsmaa/storage"
)

var (
	// Global flags
	providerName string
	addr         string
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "gwsmaa",
		Short: "Google Workspace multi-action agent backend",
		Long: `A decision service for Google Workspace automation.

Given a task and the current workspace state, it asks an LLM for the next
action(s) and returns them as a validated, numbered action list. Also hosts
the Google OAuth2 handshake that supplies the automation with credentials.`,
	}

	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "LLM provider (anthropic, openai, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (overrides SERVER_ADDR)")

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the decision HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	settings, err := config.New(providerName)
	if err != nil {
		return err
	}

	logger := logging.New(settings.Server.LogLevel)
	defer func() { _ = logger.Sync() }()

	apiKey, err := config.APIKeyFor(settings.LLM.Provider)
	if err != nil {
		return err
	}

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return err
	}
	provider, err := llm.NewProviderBuilder(providerType).
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		TopP(float32(settings.LLM.TopP)).
		APIKey(apiKey)
	if err != nil {
		return err
	}

	sessions, err := storage.OpenSessions(settings.Server.SessionDBPath)
	if err != nil {
		return err
	}
	defer sessions.Close()

	decider := agent.NewDecider(llm.NewClient(provider, logger), logger)
	srv := server.New(decider, sessions, settings.OAuth, logger)

	listenAddr := settings.Server.Addr
	if addr != "" {
		listenAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("addr", listenAddr),
		zap.String("provider", provider.Name()),
		zap.String("model", provider.Model()))

	if err := srv.ServeContext(ctx, listenAddr); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
