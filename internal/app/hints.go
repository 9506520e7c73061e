package app

import (
	"fmt"
	"strings"

	"hedtags/internal/types"
)

// tagSuggestions proposes corrections for a tag the schema does not know.
// When the tag's final segment is a registered short name, the long forms
// behind it are the likely intended spellings.
func tagSuggestions(mapping *types.Mapping, tag string) []string {
	formatted := strings.ToLower(tag)
	leaf := formatted
	if idx := strings.LastIndex(formatted, types.TagPathSeparator); idx >= 0 {
		leaf = formatted[idx+1:]
	}
	if leaf == "" {
		return nil
	}
	entry, ok := mapping.Lookup(leaf)
	if !ok {
		return nil
	}
	var hints []string
	for _, candidate := range entry.Entries {
		if candidate.LongFormattedTag == formatted {
			continue
		}
		hints = append(hints, fmt.Sprintf(
			"hint: %q is not in the schema; did you mean %q?",
			tag, candidate.LongTag,
		))
	}
	return hints
}
