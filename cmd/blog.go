// ABOUTME: Blog commands for listing, reading and deleting posts
// ABOUTME: Listing and reading are public; deleting requires a session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Read and manage blog posts",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runBlogList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var blogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runBlogShow(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var blogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runBlogDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(blogCmd)
	blogCmd.AddCommand(blogListCmd, blogShowCmd, blogDeleteCmd)
}

func runBlogList(ctx context.Context, w io.Writer) int {
	c := client.New(resolveAPIURL(), nil)
	list, err := c.ListPosts(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, list)
		return exitOK
	}
	if len(list.Posts) == 0 {
		fmt.Fprintln(w, "No posts.")
		return exitOK
	}
	for _, p := range list.Posts {
		fmt.Fprintf(w, "%-28s %s\n", p.Slug, p.Title)
	}
	return exitOK
}

func runBlogShow(ctx context.Context, w io.Writer, slug string) int {
	c := client.New(resolveAPIURL(), nil)
	post, err := c.GetPost(ctx, slug)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, post)
		return exitOK
	}
	fmt.Fprintf(w, "%s\n", post.Title)
	if post.Author != "" || post.PublishedAt != "" {
		fmt.Fprintf(w, "%s  %s\n", post.Author, relativeTime(post.PublishedAt))
	}
	fmt.Fprintf(w, "\n%s\n", post.Content)
	return exitOK
}

func runBlogDelete(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil || id <= 0 {
		fmt.Fprintf(w, "Error: post id must be a positive number, got %q\n", idArg)
		return exitErrored
	}

	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	if err := a.client.DeletePost(ctx, id); err != nil {
		return reportError(w, err)
	}
	printMessage(w, "", fmt.Sprintf("Deleted post %d", id))
	return exitOK
}
