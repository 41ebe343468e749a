// ABOUTME: Page-based infinite scroll state for SMS history
// ABOUTME: Decides when the next page should load and accumulates records

package sms

import "github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"

// HistoryPageSize is the default page size for SMS history
const HistoryPageSize = 20

// HistoryPager tracks loaded history pages
type HistoryPager struct {
	Limit     int
	Threshold int

	records []client.SMSRecord
	page    int
	total   int
	loading bool
	more    bool
}

// NewHistoryPager returns a pager that requests limit records per page and
// prefetches when the cursor is within threshold rows of the end
func NewHistoryPager(limit, threshold int) *HistoryPager {
	if limit <= 0 {
		limit = HistoryPageSize
	}
	if threshold < 0 {
		threshold = 0
	}
	return &HistoryPager{Limit: limit, Threshold: threshold, more: true}
}

// Records returns everything loaded so far
func (p *HistoryPager) Records() []client.SMSRecord {
	return p.records
}

// Total is the server-reported record count
func (p *HistoryPager) Total() int {
	return p.total
}

// Loading reports whether a page is in flight
func (p *HistoryPager) Loading() bool {
	return p.loading
}

// HasMore reports whether the last page was full
func (p *HistoryPager) HasMore() bool {
	return p.more
}

// NeedsMore reports whether the next page should be requested for a cursor
// at the given row
func (p *HistoryPager) NeedsMore(cursor int) bool {
	if p.loading || !p.more {
		return false
	}
	return cursor >= len(p.records)-1-p.Threshold
}

// Begin marks a page in flight and returns its number
func (p *HistoryPager) Begin() int {
	p.loading = true
	return p.page + 1
}

// Append records a loaded page
func (p *HistoryPager) Append(page *client.SMSHistoryPage) {
	p.loading = false
	if page == nil {
		p.more = false
		return
	}
	p.records = append(p.records, page.Messages...)
	p.page++
	p.total = page.Total
	p.more = len(page.Messages) >= p.Limit
	if page.Pages > 0 && p.page >= page.Pages {
		p.more = false
	}
}

// Fail clears the in-flight flag after an error so the page can be retried
func (p *HistoryPager) Fail() {
	p.loading = false
}

// Reset discards loaded pages, e.g. after a send
func (p *HistoryPager) Reset() {
	p.records = nil
	p.page = 0
	p.total = 0
	p.loading = false
	p.more = true
}

// ResetWith replaces the loaded pages with a fresh first page
func (p *HistoryPager) ResetWith(first *client.SMSHistoryPage) {
	p.Reset()
	p.Append(first)
}
