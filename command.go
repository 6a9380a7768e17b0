package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sgaunet/auto-close/internal/logger"
	"github.com/sgaunet/auto-close/internal/security"
	"github.com/sgaunet/auto-close/internal/timeutil"
	"github.com/sgaunet/auto-close/internal/ui"
	"github.com/sgaunet/auto-close/internal/urlutil"
	"github.com/sgaunet/auto-close/pkg/actions"
	"github.com/sgaunet/auto-close/pkg/closer"
	"github.com/sgaunet/auto-close/pkg/config"
	"github.com/sgaunet/auto-close/pkg/entity"
	"github.com/sgaunet/auto-close/pkg/git"
	"github.com/sgaunet/auto-close/pkg/github"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "https://api.github.com"

type entityFlags struct {
	items   string
	number  int
	confirm bool
}

func newEntityCommand(e entity.Config) *cobra.Command {
	flags := &entityFlags{}

	cmd := &cobra.Command{
		Use:     e.Command,
		Aliases: e.Aliases(),
		Short:   fmt.Sprintf("Close %s entities (%s items)", e.EntityType, e.ItemType),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log = logger.NewLogger(logLevel)
			return runClose(cmd.Context(), e, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.items, "items", "i", "",
		"Agent output JSON file listing "+e.ItemType+" items")
	cmd.Flags().IntVarP(&flags.number, "number", "n", 0,
		"Close this "+e.EntityType+" number, overriding the configured target")
	cmd.Flags().BoolVar(&flags.confirm, "confirm", false,
		"Ask before closing each "+e.EntityType)
	return cmd
}

func runClose(ctx context.Context, e entity.Config, flags *entityFlags, stdout io.Writer) error {
	start := time.Now()
	log.Debug(fmt.Sprintf("auto-close starting for %s", e.ItemTypeDisplay))

	hcfg, err := loadHandlerConfig(e, flags.number)
	if err != nil {
		return err
	}

	trigger, err := actions.LoadContext()
	if err != nil {
		return fmt.Errorf("failed to load workflow context: %w", err)
	}
	if err := resolveRepository(trigger, repoFlag, "."); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Repository: %s/%s", trigger.Owner, trigger.Repo))

	caps, err := newCapabilities(e)
	if err != nil {
		return err
	}

	handler := closer.NewHandler(e, caps, hcfg, trigger)
	handler.SetLogger(log)
	if flags.confirm {
		if isTerminal(os.Stdin.Fd()) {
			handler.SetConfirm(confirmWith(ui.NewPrompt(), e))
		} else {
			log.Warn("--confirm ignored: stdin is not a terminal")
		}
	}

	items, err := loadItems(e, flags.items)
	if err != nil {
		return err
	}

	results := make([]closer.Result, 0, len(items))
	enc := json.NewEncoder(stdout)
	for _, item := range items {
		if ctx.Err() != nil {
			return fmt.Errorf("interrupted: %w", ctx.Err())
		}
		res := handler.Handle(ctx, item)
		results = append(results, res)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if err := writeOutputs(actions.NewOutputFromEnv(), e, results); err != nil {
		log.Warn(fmt.Sprintf("Failed to write step outputs: %v", err))
	}

	tally := closer.Count(results)
	log.Info(fmt.Sprintf("Processed %d %s item(s) in %s: %d closed, %d already closed, %d skipped, %d failed",
		len(results), e.ItemTypeDisplay, timeutil.FormatDuration(time.Since(start)),
		tally.Closed, tally.AlreadyClosed, tally.Skipped, tally.Failed))

	if tally.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errItemsFailed, tally.Failed, len(results))
	}
	return nil
}

// loadHandlerConfig merges the config file block of e with the environment
// filters and the --number override.
func loadHandlerConfig(e entity.Config, number int) (config.Handler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Handler{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	hcfg, err := cfg.For(e.ItemType)
	if err != nil {
		return config.Handler{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	fileTarget := hcfg.Target
	env := config.ParseEntityConfig(e.EnvPrefix)
	hcfg.ApplyEntityConfig(env)
	if !env.TargetSet && fileTarget == "" {
		// Nothing configured: take the number from each item, else the event.
		hcfg.Target = ""
	}

	switch {
	case number > 0:
		hcfg.Target = strconv.Itoa(number)
	case number < 0:
		return config.Handler{}, errInvalidNumber
	}

	if err := hcfg.Validate(); err != nil {
		return config.Handler{}, fmt.Errorf("invalid %s configuration: %w", e.ItemType, err)
	}
	log.Debug(fmt.Sprintf("Handler config: max=%d target=%q labels=%v prefix=%q",
		hcfg.Max, hcfg.Target, hcfg.RequiredLabels, hcfg.RequiredTitlePrefix))
	return hcfg, nil
}

// resolveRepository fills the trigger's owner/repo from the --repo flag,
// GITHUB_REPOSITORY (already loaded) or the origin remote of the git
// repository containing dir, in that order.
func resolveRepository(trigger *actions.Context, flag, dir string) error {
	if flag != "" {
		owner, repo, err := urlutil.ParseRepository(flag)
		if err != nil {
			return fmt.Errorf("invalid --repo: %w", err)
		}
		trigger.SetRepository(owner, repo)
		return nil
	}
	if trigger.Owner != "" && trigger.Repo != "" {
		return nil
	}

	repo, err := git.OpenRepository(dir)
	if err != nil {
		return fmt.Errorf("no repository given and none detected: %w", err)
	}
	repo.SetLogger(log)

	owner, name, err := repo.GitHubRepository(git.DefaultRemote)
	if err != nil {
		return fmt.Errorf("no repository given and none detected: %w", err)
	}
	trigger.SetRepository(owner, name)
	return nil
}

func newCapabilities(e entity.Config) (closer.Capabilities, error) {
	token, source := security.TokenFromEnv("GITHUB_TOKEN", "GH_TOKEN")
	security.DebugAuth(log, source, token)

	client, err := github.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	client.SetLogger(log)

	if apiURL := os.Getenv("GITHUB_API_URL"); apiURL != "" && apiURL != defaultAPIURL {
		log.Debug(fmt.Sprintf("Using GitHub API at %s", apiURL))
		if err := client.SetBaseURL(apiURL); err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL: %w", err)
		}
	}

	return capabilitiesFor(e, client), nil
}

func capabilitiesFor(e entity.Config, client *github.Client) closer.Capabilities {
	switch e.EntityType {
	case entity.PullRequest.EntityType:
		return github.NewPullRequestCapabilities(client)
	case entity.Discussion.EntityType:
		return github.NewDiscussionCapabilities(client)
	default:
		return github.NewIssueCapabilities(client)
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmWith adapts a yes/no prompt to the handler's confirmation hook.
func confirmWith(c ui.Confirmer, e entity.Config) closer.ConfirmFunc {
	return func(_ context.Context, d *closer.Details) (bool, error) {
		return c.Confirm(fmt.Sprintf("Close %s #%d %q?", e.EntityType, d.Number, d.Title))
	}
}

// loadItems returns the items to process. Without an items file the handler
// runs once with an empty item, relying on the configured target.
func loadItems(e entity.Config, path string) ([]entity.Item, error) {
	if path == "" {
		return []entity.Item{{}}, nil
	}

	items, err := actions.LoadItems(path, e.ItemType)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		log.Info(fmt.Sprintf("No %s items found in %s", e.ItemType, path))
	}
	return items, nil
}

func writeOutputs(out *actions.Output, e entity.Config, results []closer.Result) error {
	tally := closer.Count(results)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := out.Set("closed_count", strconv.Itoa(tally.Closed)); err != nil {
		return err
	}
	if err := out.Set("failed_count", strconv.Itoa(tally.Failed)); err != nil {
		return err
	}
	if err := out.Set("results", string(data)); err != nil {
		return err
	}
	return out.AppendSummary(closer.RenderSummary(e, results))
}
