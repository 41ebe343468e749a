// ABOUTME: Bulk SMS endpoints: categories, send, history, balance, bundles
// ABOUTME: All calls require a bearer token

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Category is a group of saved contacts with a precomputed member count
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryList is the contact categories response
type CategoryList struct {
	Categories []Category `json:"categories"`
}

// SendSMSRequest addresses either a contact category or an explicit number list
type SendSMSRequest struct {
	Recipients []string `json:"recipients,omitempty"`
	Category   string   `json:"category,omitempty"`
	Message    string   `json:"message"`
	SenderID   string   `json:"sender_id"`
}

// SendSMSResponse reports what the backend accepted
type SendSMSResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

// SMSRecord is one sent message in the history
type SMSRecord struct {
	ID        int    `json:"id"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	SenderID  string `json:"sender_id"`
	Category  string `json:"category,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// SMSHistoryPage is one page of SMS history
type SMSHistoryPage struct {
	Messages []SMSRecord `json:"messages"`
	Page     int         `json:"page"`
	Pages    int         `json:"pages"`
	Total    int         `json:"total"`
}

// Balance is the caller's SMS credit balance
type Balance struct {
	Balance int `json:"balance"`
}

// Bundle is a purchasable pack of SMS credits
type Bundle struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
}

// BundleList is the bundles response
type BundleList struct {
	Bundles []Bundle `json:"bundles"`
}

// ContactCategories calls GET /sms/contact-categories
func (c *Client) ContactCategories(ctx context.Context) ([]Category, error) {
	var out CategoryList
	if err := c.do(ctx, "/sms/contact-categories", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// SendSMS calls POST /sms/send
func (c *Client) SendSMS(ctx context.Context, in *SendSMSRequest) (*SendSMSResponse, error) {
	var out SendSMSResponse
	if err := c.do(ctx, "/sms/send", Request{Method: http.MethodPost, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SMSHistory calls GET /sms/history
func (c *Client) SMSHistory(ctx context.Context, page, limit int) (*SMSHistoryPage, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out SMSHistoryPage
	if err := c.do(ctx, "/sms/history", Request{Query: q, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SMSBalance calls GET /sms/balance
func (c *Client) SMSBalance(ctx context.Context) (int, error) {
	var out Balance
	if err := c.do(ctx, "/sms/balance", Request{Auth: true}, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// SMSBundles calls GET /sms/bundles
func (c *Client) SMSBundles(ctx context.Context) ([]Bundle, error) {
	var out BundleList
	if err := c.do(ctx, "/sms/bundles", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return out.Bundles, nil
}
