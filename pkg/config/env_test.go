package config_test

import (
	"testing"

	"github.com/sgaunet/auto-close/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestParseEntityConfigDefaults(t *testing.T) {
	t.Setenv("TEST_CLOSE_ISSUE_REQUIRED_LABELS", "")
	t.Setenv("TEST_CLOSE_ISSUE_REQUIRED_TITLE_PREFIX", "")
	t.Setenv("TEST_CLOSE_ISSUE_TARGET", "")

	cfg := config.ParseEntityConfig("TEST_CLOSE_ISSUE")
	assert.Empty(t, cfg.RequiredLabels)
	assert.NotNil(t, cfg.RequiredLabels)
	assert.Equal(t, "", cfg.RequiredTitlePrefix)
	assert.Equal(t, "triggering", cfg.Target)
	assert.False(t, cfg.TargetSet)
}

func TestParseEntityConfigFromEnvironment(t *testing.T) {
	t.Run("required labels", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_ISSUE_REQUIRED_LABELS", "bug, enhancement, stale")
		cfg := config.ParseEntityConfig("TEST_CLOSE_ISSUE")
		assert.Equal(t, []string{"bug", "enhancement", "stale"}, cfg.RequiredLabels)
	})

	t.Run("required title prefix is kept raw", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_ISSUE_REQUIRED_TITLE_PREFIX", " [refactor]")
		cfg := config.ParseEntityConfig("TEST_CLOSE_ISSUE")
		assert.Equal(t, " [refactor]", cfg.RequiredTitlePrefix)
	})

	t.Run("target", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_ISSUE_TARGET", "*")
		cfg := config.ParseEntityConfig("TEST_CLOSE_ISSUE")
		assert.Equal(t, "*", cfg.Target)
		assert.True(t, cfg.TargetSet)
	})

	t.Run("explicit default target", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_ISSUE_TARGET", "triggering")
		cfg := config.ParseEntityConfig("TEST_CLOSE_ISSUE")
		assert.Equal(t, "triggering", cfg.Target)
		assert.True(t, cfg.TargetSet)
	})

	t.Run("other prefix", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_PR_REQUIRED_LABELS", "ready-to-close")
		t.Setenv("TEST_CLOSE_PR_TARGET", "123")
		cfg := config.ParseEntityConfig("TEST_CLOSE_PR")
		assert.Equal(t, []string{"ready-to-close"}, cfg.RequiredLabels)
		assert.Equal(t, "123", cfg.Target)
	})

	t.Run("invalid target is not validated here", func(t *testing.T) {
		t.Setenv("TEST_CLOSE_PR_TARGET", "not-a-number")
		cfg := config.ParseEntityConfig("TEST_CLOSE_PR")
		assert.Equal(t, "not-a-number", cfg.Target)
	})
}
