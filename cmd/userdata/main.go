// userdata runs a provider extractor outside the HTTP service.
//
// Subcommands:
//   - providers: list the built-in extractors
//   - extract: fetch a profile with an access token, or normalize a saved
//     raw profile, and print the normalized JSON
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
