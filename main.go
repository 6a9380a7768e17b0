// Package main provides the entry point for the auto-close CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sgaunet/auto-close/internal/logger"
	"github.com/sgaunet/auto-close/internal/security"
	"github.com/sgaunet/auto-close/pkg/entity"
	"github.com/spf13/cobra"
)

var (
	errItemsFailed   = errors.New("some items failed")
	errInvalidNumber = errors.New("--number must be a positive integer")
)

var (
	logLevel   string
	configPath string
	repoFlag   string
	log        = logger.NoLogger()
)

var rootCmd = &cobra.Command{
	Use:   "auto-close",
	Short: "Close GitHub issues, pull requests and discussions from workflows",
	Long: `auto-close closes GitHub issues, pull requests and discussions requested
by automated workflows. Each candidate is checked against the configured
required labels, title prefix and per-run limit before anything is changed.
Entities that are already closed are reported as successes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info",
		"Set log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Handler configuration file (default ~/.config/auto-close/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "R", "",
		"Repository as owner/repo (default $GITHUB_REPOSITORY or the origin remote)")

	for _, e := range entity.All() {
		rootCmd.AddCommand(newEntityCommand(e))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", security.SanitizeString(err.Error()))
		os.Exit(1)
	}
}
