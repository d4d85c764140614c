package route

import (
	"sort"
	"strings"
)

// MergeRoutes combines official and custom suggestions into one list keyed by
// normalized route. Official entries always win: a custom entry whose key is
// already taken is dropped. Among customs, the first occurrence wins.
func MergeRoutes(official, custom []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(official)+len(custom))
	merged := make([]Suggestion, 0, len(official)+len(custom))

	for _, s := range official {
		key := s.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}
	for _, s := range custom {
		key := s.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}

	return merged
}

// FilterByPrefix keeps suggestions that match prefix by either arm:
//   - normalized: the key starts with the normalized prefix followed by "/"
//   - plain: the lowercased raw slash starts with the trimmed, lowercased prefix
//
// An empty prefix keeps everything.
func FilterByPrefix(items []Suggestion, prefix string) []Suggestion {
	plain := plainPrefix(prefix)
	if plain == "" {
		return items
	}
	// A prefix made only of stripped characters would normalize to "/" and
	// match every key, so the normalized arm is skipped for it.
	normalized := ""
	if key := NormalizeKey(prefix); key != "/" {
		normalized = strings.TrimSuffix(key, "/") + "/"
	}

	out := make([]Suggestion, 0, len(items))
	for _, s := range items {
		raw := strings.TrimLeft(strings.ToLower(s.Slash), "/")
		if (normalized != "" && strings.HasPrefix(s.Key(), normalized)) || strings.HasPrefix(raw, plain) {
			out = append(out, s)
		}
	}
	return out
}

// SortSuggestions orders official routes before custom ones, then by key.
func SortSuggestions(items []Suggestion) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == KindOfficial
		}
		return items[i].Key() < items[j].Key()
	})
}
