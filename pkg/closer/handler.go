// Package closer implements the entity-closing engine shared by issues,
// pull requests and discussions.
//
// A [Handler] resolves which entity an item refers to, fetches it, applies
// the configured safety filters and run limit, optionally comments and
// finally closes it. Backend differences are hidden behind [Capabilities].
package closer

import (
	"context"
	"fmt"

	"github.com/sgaunet/auto-close/internal/labels"
	"github.com/sgaunet/auto-close/internal/logger"
	"github.com/sgaunet/auto-close/internal/security"
	"github.com/sgaunet/auto-close/pkg/actions"
	"github.com/sgaunet/auto-close/pkg/config"
	"github.com/sgaunet/auto-close/pkg/entity"
	"github.com/sgaunet/bullets"
)

// ConfirmFunc is asked before any mutation. Returning false skips the entity.
type ConfirmFunc func(ctx context.Context, d *Details) (bool, error)

// Handler closes entities of one kind. The close counter belongs to the
// instance: each run builds its own Handler. Handle is not safe for
// concurrent use.
type Handler struct {
	entity  entity.Config
	caps    Capabilities
	cfg     config.Handler
	trigger *actions.Context
	confirm ConfirmFunc
	log     *bullets.Logger

	closed int
}

// NewHandler creates a handler for entity kind e.
func NewHandler(e entity.Config, caps Capabilities, cfg config.Handler, trigger *actions.Context) *Handler {
	return &Handler{
		entity:  e,
		caps:    caps,
		cfg:     cfg,
		trigger: trigger,
		log:     logger.NoLogger(),
	}
}

// SetLogger sets the logger for the handler.
func (h *Handler) SetLogger(l *bullets.Logger) {
	h.log = l
}

// SetConfirm installs a hook consulted after all filters pass and before
// commenting or closing.
func (h *Handler) SetConfirm(fn ConfirmFunc) {
	h.confirm = fn
}

// Closed returns how many entities this handler has closed.
func (h *Handler) Closed() int {
	return h.closed
}

// Handle processes one item. Every failure, including a panic in a
// capability, is reported in the returned Result.
func (h *Handler) Handle(ctx context.Context, item entity.Item) (res Result) {
	number := 0
	defer func() {
		if r := recover(); r != nil {
			res = h.fail(number, fmt.Sprintf("unexpected failure handling %s #%d: %v", h.entity.EntityType, number, r))
		}
	}()

	var rn Resolved
	if h.cfg.Target == "" {
		rn = resolveDefault(h.entity, item, h.trigger)
	} else {
		rn = ResolveEntityNumber(h.entity, h.cfg.Target, item, h.trigger)
	}
	if !rn.Success {
		return h.fail(0, rn.Message)
	}
	number = rn.Number

	owner, repo := h.repository()
	if owner == "" || repo == "" {
		return h.fail(number, errNoRepository.Error())
	}

	h.log.Debug(fmt.Sprintf("Fetching %s #%d in %s/%s", h.entity.EntityType, number, owner, repo))
	details, err := h.caps.GetDetails(ctx, owner, repo, number)
	if err != nil {
		return h.fail(number, err.Error())
	}
	if details == nil {
		return h.fail(number, fmt.Sprintf("%s #%d: %s", h.entity.EntityType, number, errNilDetails))
	}

	if details.State == "closed" {
		h.log.Info(fmt.Sprintf("%s #%d is already closed", h.entity.EntityType, number))
		return Result{
			Success:       true,
			Number:        number,
			URL:           h.htmlURL(details.URL, owner, repo, number),
			Title:         details.Title,
			AlreadyClosed: true,
		}
	}

	if !CheckLabelFilter(details.Labels, h.cfg.RequiredLabels) {
		return h.fail(number, "Missing required labels: "+labels.Join(h.cfg.RequiredLabels))
	}

	if !CheckTitlePrefixFilter(details.Title, h.cfg.RequiredTitlePrefix) {
		return h.fail(number, fmt.Sprintf("Title doesn't start with %q", h.cfg.RequiredTitlePrefix))
	}

	if h.cfg.Max > 0 && h.closed >= h.cfg.Max {
		return h.fail(number, fmt.Sprintf("Max count (%d) reached", h.cfg.Max))
	}

	if h.confirm != nil {
		ok, err := h.confirm(ctx, details)
		if err != nil {
			return h.fail(number, err.Error())
		}
		if !ok {
			h.log.Info(fmt.Sprintf("Skipping %s #%d", h.entity.EntityType, number))
			return Result{
				Number:  number,
				URL:     h.htmlURL(details.URL, owner, repo, number),
				Title:   details.Title,
				Skipped: true,
				Error:   errDeclined.Error(),
			}
		}
	}

	if h.cfg.Comment != "" {
		comment, err := h.caps.AddComment(ctx, owner, repo, number, h.cfg.Comment)
		if err != nil {
			return h.fail(number, err.Error())
		}
		if comment != nil {
			h.log.Debug(fmt.Sprintf("Comment posted: %s", comment.URL))
		}
	}

	closed, err := h.caps.CloseEntity(ctx, owner, repo, number)
	if err != nil {
		return h.fail(number, err.Error())
	}
	if closed == nil {
		return h.fail(number, fmt.Sprintf("%s #%d: %s", h.entity.EntityType, number, errNilCloseReply))
	}
	h.closed++

	h.log.Info(fmt.Sprintf("Closed %s #%d", h.entity.EntityType, number))
	title := closed.Title
	if title == "" {
		title = details.Title
	}
	return Result{
		Success: true,
		Number:  number,
		URL:     h.htmlURL(closed.URL, owner, repo, number),
		Title:   title,
	}
}

// htmlURL returns url, or the entity's browser URL on the run's server when
// the backend reported none.
func (h *Handler) htmlURL(url, owner, repo string, number int) string {
	if url != "" || h.trigger == nil || h.trigger.ServerURL == "" {
		return url
	}
	return h.entity.HTMLURL(h.trigger.ServerURL, owner, repo, number)
}

func (h *Handler) repository() (string, string) {
	if h.trigger == nil {
		return "", ""
	}
	return h.trigger.Owner, h.trigger.Repo
}

func (h *Handler) fail(number int, msg string) Result {
	msg = security.SanitizeString(msg)
	if number > 0 {
		h.log.Warn(fmt.Sprintf("%s #%d: %s", h.entity.EntityType, number, msg))
	} else {
		h.log.Warn(fmt.Sprintf("%s: %s", h.entity.ItemTypeDisplay, msg))
	}
	return Result{Success: false, Number: number, Error: msg}
}
