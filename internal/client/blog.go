// ABOUTME: Blog endpoints for the marketing site content
// ABOUTME: Reads are public, writes require a bearer token

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Post is a blog post
type Post struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `json:"content,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// PostInput creates or updates a post
type PostInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Excerpt string `json:"excerpt,omitempty" validate:"max=500"`
}

// PostList is a page of posts
type PostList struct {
	Posts []Post `json:"posts"`
}

// ListPosts calls GET /blog/posts
func (c *Client) ListPosts(ctx context.Context) (*PostList, error) {
	var out PostList
	if err := c.do(ctx, "/blog/posts", Request{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPost calls GET /blog/posts/{slug}
func (c *Client) GetPost(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := c.do(ctx, "/blog/posts/"+url.PathEscape(slug), Request{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost calls POST /blog/posts
func (c *Client) CreatePost(ctx context.Context, in *PostInput) (*Post, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out Post
	if err := c.do(ctx, "/blog/posts", Request{Method: http.MethodPost, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost calls PUT /blog/posts/{id}
func (c *Client) UpdatePost(ctx context.Context, id int, in *PostInput) (*Post, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out Post
	path := fmt.Sprintf("/blog/posts/%d", id)
	if err := c.do(ctx, path, Request{Method: http.MethodPut, Body: in, Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost calls DELETE /blog/posts/{id}
func (c *Client) DeletePost(ctx context.Context, id int) error {
	path := fmt.Sprintf("/blog/posts/%d", id)
	return c.do(ctx, path, Request{Method: http.MethodDelete, Auth: true}, nil)
}
