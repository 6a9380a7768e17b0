// Package fixtures provides common test data structures for testing.
package fixtures

import (
	"fmt"

	"github.com/sgaunet/auto-close/pkg/actions"
	"github.com/sgaunet/auto-close/pkg/closer"
	"github.com/sgaunet/auto-close/pkg/entity"
)

// Test constants shared by fixtures.
const (
	Owner = "testowner"
	Repo  = "testrepo"
)

// OpenDetails returns an open entity with the given labels.
func OpenDetails(number int, title string, labelNames ...string) *closer.Details {
	labels := make([]closer.Label, 0, len(labelNames))
	for _, name := range labelNames {
		labels = append(labels, closer.Label{Name: name})
	}
	return &closer.Details{
		Number: number,
		Title:  title,
		Labels: labels,
		URL:    fmt.Sprintf("https://github.com/%s/%s/issues/%d", Owner, Repo, number),
		State:  "open",
	}
}

// ClosedDetails returns an entity that is already closed.
func ClosedDetails(number int, title string) *closer.Details {
	d := OpenDetails(number, title)
	d.State = "closed"
	return d
}

// ItemFor returns an agent output item of kind e carrying number.
func ItemFor(e entity.Config, number any) entity.Item {
	return entity.Item{
		"type":        e.ItemType,
		e.NumberField: number,
	}
}

// TriggerContext returns a trigger context for testowner/testrepo.
// Entities are keyed by payload key, e.g. {"issue": 42}.
func TriggerContext(eventName string, entities map[string]int) *actions.Context {
	c := actions.NewStaticContext(eventName, entities)
	c.SetRepository(Owner, Repo)
	return c
}
