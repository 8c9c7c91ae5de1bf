package classify

import "strings"

// botCategories are client categories used by fixture suites for crawlers.
var botCategories = map[string]struct{}{
	"crawler": {},
	"bot":     {},
	"robot":   {},
	"spider":  {},
}

// IsBotCategory reports whether a client category names a crawler.
func IsBotCategory(category string) bool {
	_, ok := botCategories[strings.ToLower(strings.TrimSpace(category))]
	return ok
}
