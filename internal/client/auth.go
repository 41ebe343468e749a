// ABOUTME: Account endpoints: login, registration, email verification, user info
// ABOUTME: Login and signup are public; user info requires a bearer token

package client

import (
	"context"
	"net/http"
	"net/url"
)

// LoginRequest holds account credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	BusinessName string `json:"business_name"`
	Message      string `json:"message,omitempty"`
}

// SignupRequest registers a new business account
type SignupRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=100"`
	FirstName    string `json:"firstname" validate:"required"`
	LastName     string `json:"lastname" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,numeric,min=10,max=12"`
	Password     string `json:"password" validate:"required,min=8"`
}

// MessageResponse is the generic {"message": "..."} body
type MessageResponse struct {
	Message string `json:"message"`
}

// UserInfo describes the logged-in account
type UserInfo struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Premium      bool   `json:"is_premium"`
	SMSBalance   int    `json:"sms_balance"`
}

// Login calls POST /security/login
func (c *Client) Login(ctx context.Context, in *LoginRequest) (*LoginResponse, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := c.do(ctx, "/security/login", Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup calls POST /security/register
func (c *Client) Signup(ctx context.Context, in *SignupRequest) (*MessageResponse, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out MessageResponse
	if err := c.do(ctx, "/security/register", Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail calls GET /security/verify-email
func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	q := url.Values{"token": {token}}
	if err := c.do(ctx, "/security/verify-email", Request{Query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendVerification calls POST /security/resend-verification
func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, "/security/resend-verification", Request{Method: http.MethodPost, Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo calls GET /security/user-info
func (c *Client) UserInfo(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := c.do(ctx, "/security/user-info", Request{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
