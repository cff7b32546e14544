// Package urls finds URLs embedded in free-form profile text.
package urls

import (
	"strings"

	"mvdan.cc/xurls/v2"
)

var strict = xurls.Strict()

// Extract returns every URL found in text in order of appearance,
// without duplicates. The result is never nil.
func Extract(text string) []string {
	found := strict.FindAllString(text, -1)

	out := make([]string, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, u := range found {
		u = strings.TrimRight(u, ".,;:")
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
