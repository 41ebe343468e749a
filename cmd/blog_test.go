// ABOUTME: Tests for blog commands
// ABOUTME: Public reads work signed out; delete needs a session

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestRunBlogListAndShow_SignedOut(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/blog/posts":            respondJSON(200, `{"posts":[{"id":1,"slug":"grow-sales","title":"Grow your sales"}]}`),
		"/blog/posts/grow-sales": respondJSON(200, `{"id":1,"slug":"grow-sales","title":"Grow your sales","content":"Send more SMS."}`),
	})

	var buf bytes.Buffer
	if exitCode := runBlogList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "grow-sales") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	if exitCode := runBlogShow(context.Background(), &buf, "grow-sales"); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Send more SMS.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunBlogDelete(t *testing.T) {
	fb := newTestEnv(t, map[string]http.HandlerFunc{
		"/blog/posts/7": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		},
	})

	var buf bytes.Buffer
	if exitCode := runBlogDelete(context.Background(), &buf, "7"); exitCode != 2 {
		t.Errorf("expected exit 2 when signed out, got %d", exitCode)
	}
	if fb.total() != 0 {
		t.Error("signed-out delete should not reach the backend")
	}

	signIn(t, 0)
	buf.Reset()
	if exitCode := runBlogDelete(context.Background(), &buf, "7"); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Deleted post 7") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
