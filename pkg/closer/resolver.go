package closer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sgaunet/auto-close/pkg/actions"
	"github.com/sgaunet/auto-close/pkg/config"
	"github.com/sgaunet/auto-close/pkg/entity"
)

// ResolveEntityNumber decides which entity an item refers to.
//
// Modes are checked in a fixed order: "*" reads e.NumberField from item, a
// positive integer string is used as is, any other value except
// "triggering" is a configuration error, and "triggering" reads the number
// from the event that started the run. An unknown target never falls back
// to "triggering".
func ResolveEntityNumber(e entity.Config, target string, item entity.Item, trigger *actions.Context) Resolved {
	if target == config.TargetItem {
		return resolveFromItem(e, item)
	}

	if n, err := strconv.Atoi(target); err == nil && n > 0 {
		if !inRange(n) {
			return unresolved("Invalid %s number in target configuration: %s", e.EntityType, target)
		}
		return resolved(n)
	}

	if target != config.TargetTriggering {
		return unresolved("Invalid %s number in target configuration: %s", e.EntityType, target)
	}

	if !trigger.InContext(e) {
		return unresolved("Not in %s context (event: %s)", e.EntityType, eventName(trigger))
	}

	n, ok := trigger.EntityNumber(e.ContextKey)
	if !ok {
		return unresolved("Target is %q but no %s found in payload", config.TargetTriggering, e.EntityType)
	}
	return resolved(n)
}

// resolveDefault is used when no target is configured at all: the item's own
// number wins, then the triggering payload.
func resolveDefault(e entity.Config, item entity.Item, trigger *actions.Context) Resolved {
	if _, present := coerceNumber(item[e.NumberField]); present {
		return resolveFromItem(e, item)
	}
	if n, ok := trigger.EntityNumber(e.ContextKey); ok {
		return resolved(n)
	}
	return unresolved("No %s number available", e.EntityType)
}

func resolveFromItem(e entity.Config, item entity.Item) Resolved {
	raw := item[e.NumberField]
	n, present := coerceNumber(raw)
	if !present {
		return unresolved("Target is %q but no %s specified in %s item",
			config.TargetItem, e.NumberField, e.ItemTypeDisplay)
	}
	if n <= 0 {
		return unresolved("Invalid %s number specified: %v", e.EntityType, raw)
	}
	return resolved(n)
}

// coerceNumber converts a decoded JSON value into an entity number.
// present is false for missing or falsy values (nil, false, "", 0).
// A present value that is not a positive integer yields n == 0.
func coerceNumber(v any) (n int, present bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case bool:
		return 0, x
	case string:
		if x == "" {
			return 0, false
		}
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil || !inRange(i) {
			return 0, true
		}
		return i, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, true
		}
		if f == 0 {
			return 0, false
		}
		return wholePositive(f), true
	case float64:
		if x == 0 {
			return 0, false
		}
		return wholePositive(x), true
	case int:
		if x == 0 {
			return 0, false
		}
		if !inRange(x) {
			return 0, true
		}
		return x, true
	case int64:
		if x == 0 {
			return 0, false
		}
		if x <= 0 || x > maxEntityNumber {
			return 0, true
		}
		return int(x), true
	default:
		return 0, true
	}
}

// maxEntityNumber bounds every accepted number. GitHub numbers are 32-bit.
const maxEntityNumber = math.MaxInt32

func inRange(n int) bool {
	return n > 0 && int64(n) <= maxEntityNumber
}

func wholePositive(f float64) int {
	if f <= 0 || f != math.Trunc(f) || f > maxEntityNumber {
		return 0
	}
	return int(f)
}

func eventName(c *actions.Context) string {
	if c == nil || c.EventName == "" {
		return "none"
	}
	return c.EventName
}

func unresolved(format string, args ...any) Resolved {
	return Resolved{Success: false, Message: fmt.Sprintf(format, args...)}
}

func resolved(number int) Resolved {
	return Resolved{Success: true, Number: number}
}
