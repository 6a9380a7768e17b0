package config

import (
	"os"

	"github.com/sgaunet/auto-close/internal/labels"
)

// Target values understood by the number resolver.
const (
	// TargetItem reads the number from the item being processed.
	TargetItem = "*"
	// TargetTriggering reads the number from the triggering event payload.
	TargetTriggering = "triggering"
	// DefaultTarget applies when no target is configured in the environment.
	DefaultTarget = TargetTriggering
)

// EntityConfig holds the filters of one entity kind read from the environment.
type EntityConfig struct {
	RequiredLabels      []string
	RequiredTitlePrefix string
	Target              string
	// TargetSet is true when <prefix>_TARGET is set to a non-empty value.
	TargetSet bool
}

// ParseEntityConfig reads <prefix>_REQUIRED_LABELS, <prefix>_REQUIRED_TITLE_PREFIX
// and <prefix>_TARGET. Only presence is checked; target values are validated
// by the resolver.
func ParseEntityConfig(envPrefix string) EntityConfig {
	target := os.Getenv(envPrefix + "_TARGET")
	set := target != ""
	if !set {
		target = DefaultTarget
	}

	return EntityConfig{
		RequiredLabels:      labels.ParseList(os.Getenv(envPrefix + "_REQUIRED_LABELS")),
		RequiredTitlePrefix: os.Getenv(envPrefix + "_REQUIRED_TITLE_PREFIX"),
		Target:              target,
		TargetSet:           set,
	}
}
