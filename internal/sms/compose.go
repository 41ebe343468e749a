// ABOUTME: Compose state, recipient resolution and the send gate
// ABOUTME: Pure functions over a Composition so views and commands share one verdict

package sms

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

// Gate failures, checked in this order
var (
	ErrInvalidSenderID     = errors.New("sender ID must be 3-11 letters or digits")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrNoRecipients        = errors.New("no recipients selected")
	ErrTooManyRecipients   = errors.New("too many recipients for one send")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInsufficientBalance = errors.New("insufficient SMS balance")
)

// Limits are the numeric rules applied by the gate
type Limits struct {
	MaxRecipients int
	UnitPrice     float64
}

// DefaultLimits returns the built-in batch max and unit price
func DefaultLimits() Limits {
	return Limits{MaxRecipients: MaxRecipientsPerBatch, UnitPrice: UnitPrice}
}

// Composition is the state of the compose form
type Composition struct {
	SenderID       string
	Message        string
	Categories     []string
	RecipientsText string

	// CategoryInfo holds the known categories with member counts
	CategoryInfo []client.Category
}

// ToggleCategory selects name, or deselects it if already selected
func (c *Composition) ToggleCategory(name string) {
	if i := slices.Index(c.Categories, name); i >= 0 {
		c.Categories = slices.Delete(c.Categories, i, i+1)
		return
	}
	c.Categories = append(c.Categories, name)
}

// Selected reports whether the category is selected
func (c *Composition) Selected(name string) bool {
	return slices.Contains(c.Categories, name)
}

// Resolution is who a composition would reach and what it would cost.
// Category and manual pools are not deduplicated against each other.
type Resolution struct {
	// Manual holds valid numbers, normalized and distinct
	Manual        []string
	Invalid       []string
	CategoryCount int
	ManualCount   int
	Total         int
	EstimatedCost float64
}

// Resolve computes recipients and cost for c
func Resolve(c Composition, limits Limits) Resolution {
	counts := make(map[string]int, len(c.CategoryInfo))
	for _, cat := range c.CategoryInfo {
		counts[cat.Name] = cat.Count
	}

	var r Resolution
	seen := make(map[string]struct{}, len(c.Categories))
	for _, name := range c.Categories {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		r.CategoryCount += counts[name]
	}

	numbers := make(map[string]struct{})
	for _, n := range ParseRecipients(c.RecipientsText) {
		if !ValidPhone(n) {
			r.Invalid = append(r.Invalid, n)
			continue
		}
		n = NormalizePhone(n)
		if _, dup := numbers[n]; dup {
			continue
		}
		numbers[n] = struct{}{}
		r.Manual = append(r.Manual, n)
	}
	r.ManualCount = len(r.Manual)
	r.Total = r.CategoryCount + r.ManualCount
	r.EstimatedCost = float64(r.Total) * limits.UnitPrice
	return r
}

// Verdict is the outcome of the send gate
type Verdict struct {
	Allowed    bool
	Reason     error
	Resolution Resolution
}

// Evaluate runs the send gate; the first failing rule wins
func Evaluate(c Composition, balance int, limits Limits) Verdict {
	res := Resolve(c, limits)
	v := Verdict{Resolution: res}

	switch {
	case !ValidSenderID(c.SenderID):
		v.Reason = ErrInvalidSenderID
	case c.Message == "":
		v.Reason = ErrEmptyMessage
	case res.Total == 0:
		v.Reason = ErrNoRecipients
	case res.Total > limits.MaxRecipients:
		v.Reason = fmt.Errorf("%w: %d selected, maximum is %d", ErrTooManyRecipients, res.Total, limits.MaxRecipients)
	case len(res.Invalid) > 0:
		v.Reason = fmt.Errorf("%w: %s", ErrInvalidPhone, res.Invalid[0])
	case res.Total > balance:
		v.Reason = fmt.Errorf("%w: need %d credits, have %d", ErrInsufficientBalance, res.Total, balance)
	default:
		v.Allowed = true
	}
	return v
}
