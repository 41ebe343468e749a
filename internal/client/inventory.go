// ABOUTME: Inventory endpoints: stock records, sales history, alerts, expenses
// ABOUTME: All calls require a bearer token

package client

import (
	"context"
	"net/http"
)

// StockRecordRequest records a stock movement or sale
type StockRecordRequest struct {
	ProductName  string  `json:"product_name" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gt=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	CostPrice    float64 `json:"cost_price,omitempty" validate:"gte=0"`
}

// Sale is one entry in the sales history
type Sale struct {
	ID          int     `json:"id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

// SalesHistory is the sales history response
type SalesHistory struct {
	History    []Sale  `json:"history"`
	TotalSales float64 `json:"total_sales"`
}

// StockAlert flags a product running low
type StockAlert struct {
	ProductName string `json:"product_name"`
	Remaining   int    `json:"remaining"`
	Threshold   int    `json:"threshold"`
}

// StockAlerts is the stock alert response (premium accounts)
type StockAlerts struct {
	Alerts []StockAlert `json:"alerts"`
}

// ExpenseRequest adds an expense
type ExpenseRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Category    string  `json:"category,omitempty"`
}

// Expense is one tracked expense
type Expense struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// ExpenseSummary is the expense tracking response
type ExpenseSummary struct {
	Expenses []Expense `json:"expenses"`
	Total    float64   `json:"total"`
}

// RecordStock calls POST /stock_manage/stocks
func (c *Client) RecordStock(ctx context.Context, in *StockRecordRequest) (*MessageResponse, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out MessageResponse
	if err := c.do(ctx, "/stock_manage/stocks", Request{Method: http.MethodPost, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SalesHistory calls GET /stock_manage/stocks/history
func (c *Client) SalesHistory(ctx context.Context) (*SalesHistory, error) {
	var out SalesHistory
	if err := c.do(ctx, "/stock_manage/stocks/history", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockAlerts calls GET /stock_manage/stock/alert
func (c *Client) StockAlerts(ctx context.Context) (*StockAlerts, error) {
	var out StockAlerts
	if err := c.do(ctx, "/stock_manage/stock/alert", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddExpense calls POST /expenses/add
func (c *Client) AddExpense(ctx context.Context, in *ExpenseRequest) (*MessageResponse, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out MessageResponse
	if err := c.do(ctx, "/expenses/add", Request{Method: http.MethodPost, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackExpenses calls GET /expenses/track, or /expenses/track/all when all is set
func (c *Client) TrackExpenses(ctx context.Context, all bool) (*ExpenseSummary, error) {
	path := "/expenses/track"
	if all {
		path += "/all"
	}
	var out ExpenseSummary
	if err := c.do(ctx, path, Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
