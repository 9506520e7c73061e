package core

import (
	"iter"
	"strings"

	"hedtags/internal/types"
)

// TagAncestors returns a lazy sequence over a tag and its ancestor
// prefixes, closest first: "a/b/c" yields "a/b/c", "a/b", "a". Each
// step is recomputed by string truncation, so the sequence carries no
// state and is freely restartable.
func TagAncestors(tag string) iter.Seq[string] {
	return func(yield func(string) bool) {
		current := tag
		for current != "" {
			if !yield(current) {
				return
			}
			idx := strings.LastIndex(current, types.TagPathSeparator)
			if idx < 0 {
				return
			}
			current = current[:idx]
		}
	}
}

// placeholderForm replaces the tag's final path segment with the
// placeholder marker. A single-segment tag collapses to the bare
// marker.
func placeholderForm(tag string) string {
	idx := strings.LastIndex(tag, types.TagPathSeparator)
	if idx < 0 {
		return types.Placeholder
	}
	return tag[:idx+1] + types.Placeholder
}

// tagSlashIndices returns the byte positions of every path separator
// in the tag.
func tagSlashIndices(tag string) []int {
	var indices []int
	for i := range len(tag) {
		if tag[i:i+1] == types.TagPathSeparator {
			indices = append(indices, i)
		}
	}
	return indices
}
