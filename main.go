// ABOUTME: Entry point for the nkwabiz console
// ABOUTME: Command-line and terminal client for bulk SMS and inventory

package main

import (
	"fmt"
	"os"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
