// Command badgectl is a terminal client for the badge platform: it signs in,
// browses the catalog, and edits the stored profile through the same client
// core the app screens use.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
