// ABOUTME: Payment endpoints for buying SMS bundles through the backend gateway
// ABOUTME: Initialize returns a checkout URL and reference; verify settles it

package client

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentInitRequest starts a bundle purchase
type PaymentInitRequest struct {
	BundleID int `json:"bundle_id" validate:"gt=0"`
}

// PaymentInitResponse carries the checkout URL and the payment reference
type PaymentInitResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

// PaymentVerification is the result of verifying a reference
type PaymentVerification struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Credits int    `json:"credits"`
}

// Payment is one entry in the payment history
type Payment struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Bundle    string  `json:"bundle"`
	CreatedAt string  `json:"created_at"`
}

// PaymentHistory is the payment history response
type PaymentHistory struct {
	Payments []Payment `json:"payments"`
}

// InitializePayment calls POST /payment/initialize
func (c *Client) InitializePayment(ctx context.Context, in *PaymentInitRequest) (*PaymentInitResponse, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out PaymentInitResponse
	if err := c.do(ctx, "/payment/initialize", Request{Method: http.MethodPost, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment calls GET /payment/verify
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error) {
	var out PaymentVerification
	q := url.Values{"reference": {reference}}
	if err := c.do(ctx, "/payment/verify", Request{Query: q, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentHistory calls GET /payment/history
func (c *Client) PaymentHistory(ctx context.Context) (*PaymentHistory, error) {
	var out PaymentHistory
	if err := c.do(ctx, "/payment/history", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
