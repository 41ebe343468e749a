// ABOUTME: Batch planning and sequential dispatch of bulk SMS sends
// ABOUTME: Collects a per-batch ledger instead of stopping at the first failure

package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

// Batch is one send request: either a whole category or a number list
type Batch struct {
	Category   string
	Recipients []string
}

// Label names the batch for display
func (b Batch) Label() string {
	if b.Category != "" {
		return "category " + b.Category
	}
	return fmt.Sprintf("%d manual numbers", len(b.Recipients))
}

// Plan splits a composition into requests: one per selected category,
// followed by one for the manual numbers when present
func Plan(c Composition, limits Limits) []Batch {
	res := Resolve(c, limits)

	var batches []Batch
	seen := make(map[string]struct{}, len(c.Categories))
	for _, name := range c.Categories {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		batches = append(batches, Batch{Category: name})
	}
	if len(res.Manual) > 0 {
		batches = append(batches, Batch{Recipients: res.Manual})
	}
	return batches
}

// Sender sends one SMS request
type Sender interface {
	SendSMS(ctx context.Context, in *client.SendSMSRequest) (*client.SendSMSResponse, error)
}

// ItemResult is the result of one batch
type ItemResult struct {
	Batch    Batch
	Response *client.SendSMSResponse
	Err      error
	Skipped  bool
}

// OK reports whether the batch was sent without error
func (r ItemResult) OK() bool {
	return !r.Skipped && r.Err == nil
}

// Outcome is the ledger of a dispatch
type Outcome struct {
	Items   []ItemResult
	Aborted error
}

// Succeeded returns the batches that were sent
func (o *Outcome) Succeeded() []ItemResult {
	return o.filter(func(r ItemResult) bool { return r.OK() })
}

// Failed returns the batches that were attempted and failed
func (o *Outcome) Failed() []ItemResult {
	return o.filter(func(r ItemResult) bool { return !r.Skipped && r.Err != nil })
}

// Skipped returns the batches never attempted
func (o *Outcome) Skipped() []ItemResult {
	return o.filter(func(r ItemResult) bool { return r.Skipped })
}

// Sent sums the sent counts reported by the backend
func (o *Outcome) Sent() int {
	total := 0
	for _, r := range o.Succeeded() {
		total += r.Response.Sent
	}
	return total
}

// Err joins every failure, or returns nil when all batches succeeded
func (o *Outcome) Err() error {
	var errs []error
	for _, r := range o.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", r.Batch.Label(), r.Err))
	}
	if o.Aborted != nil && len(o.Skipped()) > 0 {
		errs = append(errs, fmt.Errorf("%d batches not attempted: %w", len(o.Skipped()), o.Aborted))
	}
	return errors.Join(errs...)
}

func (o *Outcome) filter(keep func(ItemResult) bool) []ItemResult {
	var out []ItemResult
	for _, r := range o.Items {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Dispatch sends batches one after another. A failed batch does not stop
// later ones, except for session errors and cancellation, which abort and
// mark the rest skipped.
func Dispatch(ctx context.Context, sender Sender, senderID, text string, batches []Batch) *Outcome {
	out := &Outcome{Items: make([]ItemResult, 0, len(batches))}

	for _, b := range batches {
		if out.Aborted != nil {
			out.Items = append(out.Items, ItemResult{Batch: b, Skipped: true})
			continue
		}
		if err := ctx.Err(); err != nil {
			out.Aborted = err
			out.Items = append(out.Items, ItemResult{Batch: b, Skipped: true})
			continue
		}

		req := &client.SendSMSRequest{
			Category:   b.Category,
			Recipients: b.Recipients,
			Message:    text,
			SenderID:   senderID,
		}
		resp, err := sender.SendSMS(ctx, req)
		out.Items = append(out.Items, ItemResult{Batch: b, Response: resp, Err: err})

		if err != nil {
			slog.Warn("SMS batch failed", "batch", b.Label(), "error", err)
			if client.IsSessionError(err) || ctx.Err() != nil {
				out.Aborted = err
			}
			continue
		}
		slog.Debug("SMS batch sent", "batch", b.Label(), "sent", resp.Sent, "failed", resp.Failed)
	}
	return out
}
