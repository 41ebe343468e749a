// ABOUTME: Bulk SMS workflow tying the gate, dispatch, sender MRU and refreshes together
// ABOUTME: Shared by the sms send command and the TUI compose screen

package sms

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/cache"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

const categoriesKey = "contact-categories"

// API is the subset of the backend client used by the workflow
type API interface {
	Sender
	ContactCategories(ctx context.Context) ([]client.Category, error)
	SMSHistory(ctx context.Context, page, limit int) (*client.SMSHistoryPage, error)
	SMSBalance(ctx context.Context) (int, error)
}

// Session holds the cached wallet balance
type Session interface {
	Balance() int
	SetBalance(n int) error
}

// SenderHistory records sender IDs used for sends
type SenderHistory interface {
	Add(id string) error
}

// Workflow runs bulk SMS sends
type Workflow struct {
	api        API
	session    Session
	senders    SenderHistory
	limits     Limits
	categories *cache.Cache[[]client.Category]
}

// NewWorkflow creates a workflow. categoryTTL controls how long contact
// categories are reused before refetching.
func NewWorkflow(api API, sess Session, senders SenderHistory, limits Limits, categoryTTL time.Duration) *Workflow {
	return &Workflow{
		api:        api,
		session:    sess,
		senders:    senders,
		limits:     limits,
		categories: cache.New[[]client.Category](categoryTTL),
	}
}

// Limits returns the limits used by the gate
func (w *Workflow) Limits() Limits {
	return w.limits
}

// Categories returns contact categories, using the cache when fresh
func (w *Workflow) Categories(ctx context.Context) ([]client.Category, error) {
	return w.categories.GetOrLoad(ctx, categoriesKey, w.api.ContactCategories)
}

// InvalidateCategories forces the next Categories call to refetch
func (w *Workflow) InvalidateCategories() {
	w.categories.Clear(categoriesKey)
}

// RefreshBalance fetches the balance and stores it on the session
func (w *Workflow) RefreshBalance(ctx context.Context) (int, error) {
	n, err := w.api.SMSBalance(ctx)
	if err != nil {
		return 0, err
	}
	if err := w.session.SetBalance(n); err != nil {
		slog.Warn("Failed to persist SMS balance", "error", err)
	}
	return n, nil
}

// Evaluate runs the gate against the session's cached balance
func (w *Workflow) Evaluate(c Composition) Verdict {
	return Evaluate(c, w.session.Balance(), w.limits)
}

// SendResult is everything known after a send attempt
type SendResult struct {
	Verdict Verdict
	Outcome *Outcome

	// Refreshed state; nil/zero when the refetch failed
	History    *client.SMSHistoryPage
	Balance    int
	RefreshErr error
}

// Send gates the composition and, when allowed, dispatches it. A blocked
// send returns the gate reason as the error; dispatch failures are reported
// in the outcome.
func (w *Workflow) Send(ctx context.Context, c Composition) (*SendResult, error) {
	verdict := w.Evaluate(c)
	result := &SendResult{Verdict: verdict}
	if !verdict.Allowed {
		return result, verdict.Reason
	}

	batches := Plan(c, w.limits)
	slog.Info("Dispatching SMS", "batches", len(batches), "recipients", verdict.Resolution.Total)
	result.Outcome = Dispatch(ctx, w.api, c.SenderID, c.Message, batches)

	if err := w.senders.Add(c.SenderID); err != nil {
		slog.Warn("Failed to record sender ID", "sender_id", c.SenderID, "error", err)
	}

	if result.Outcome.Aborted != nil {
		result.RefreshErr = result.Outcome.Aborted
		return result, nil
	}

	result.History, result.Balance, result.RefreshErr = w.refresh(ctx)
	return result, nil
}

// refresh refetches history page 1 and the balance concurrently
func (w *Workflow) refresh(ctx context.Context) (*client.SMSHistoryPage, int, error) {
	var (
		g       errgroup.Group
		history *client.SMSHistoryPage
		balance int
	)
	g.Go(func() error {
		h, err := w.api.SMSHistory(ctx, 1, HistoryPageSize)
		if err != nil {
			return err
		}
		history = h
		return nil
	})
	g.Go(func() error {
		n, err := w.RefreshBalance(ctx)
		if err != nil {
			return err
		}
		balance = n
		return nil
	})
	err := g.Wait()
	if err != nil {
		slog.Warn("Failed to refresh SMS state after send", "error", err)
	}
	return history, balance, err
}
