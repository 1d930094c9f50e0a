//go:build ignore

// Generates the ANALYTICS_KEY_HASH value for a dashboard key.
//
// Usage: ANALYTICS_KEY=<key> go run scripts/hash-analytics-key.go
package main

import (
	"fmt"
	"os"

	"github.com/pawshield/adtrack/internal/auth"
)

func main() {
	key := os.Getenv("ANALYTICS_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "ANALYTICS_KEY is required")
		os.Exit(1)
	}

	hash, err := auth.HashKey(key)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Println(hash)
}
