package core

import (
	"fmt"
	"strings"

	"hedtags/internal/types"
)

// TagConverter rewrites tags between short and long form using a
// schema's mapping. Conversion never fails hard: problems are reported
// as issues and the input tag is returned unchanged.
type TagConverter struct {
	mapping   *types.Mapping
	validator TagValidator
}

func NewTagConverter(mapping *types.Mapping, validator TagValidator) TagConverter {
	return TagConverter{mapping: mapping, validator: validator}
}

// Convert dispatches on direction.
func (c TagConverter) Convert(tag string, direction types.ConvertDirection) (string, []types.Issue) {
	if direction == types.ConvertToShort {
		return c.ToShort(tag)
	}
	return c.ToLong(tag)
}

// ToLong expands a tag to its fully qualified long form. Segments are
// matched left to right, each candidate's registered long form checked
// against the path walked so far. Once a matched level takes a value,
// or a segment is unknown, the rest of the tag is carried over
// verbatim. A known short name appearing inside that trailing portion
// is reported: the author most likely misplaced a real tag.
func (c TagConverter) ToLong(tag string) (string, []types.Issue) {
	formatted := formatTag(tag)
	segments := strings.Split(formatted, types.TagPathSeparator)

	var entry types.TagEntry
	found := false
	extension := false
	endIndex := 0

	for i, segment := range segments {
		if extension {
			if _, ok := c.mapping.Lookup(segment); ok {
				issue := types.ErrorIssue(types.IssueInvalidParentNode, tag,
					fmt.Sprintf("%q is a schema tag and cannot extend %q", segment, entry.LongTag))
				return tag, []types.Issue{issue}
			}
			continue
		}

		mapped, ok := c.mapping.Lookup(segment)
		if !ok {
			if !found {
				issue := types.ErrorIssue(types.IssueInvalidTag, tag,
					fmt.Sprintf("no schema tag found in %q", tag))
				return tag, []types.Issue{issue}
			}
			extension = true
			continue
		}

		single, ok := mapped.Single()
		if !ok {
			issue := types.ErrorIssue(types.IssueAmbiguousShortTag, tag,
				fmt.Sprintf("short tag %q names multiple schema nodes", segment))
			return tag, []types.Issue{issue}
		}

		segmentEnd := endIndex + len(segment)
		if i > 0 {
			segmentEnd++
		}
		walked := formatted[:segmentEnd]
		if !strings.HasSuffix(single.LongFormattedTag, walked) {
			issue := types.ErrorIssue(types.IssueInvalidParentNode, tag,
				fmt.Sprintf("%q is not the parent of %q in this schema", formatted[:endIndex], segment))
			return tag, []types.Issue{issue}
		}

		endIndex = segmentEnd
		entry = single
		found = true

		if c.validator.takesValue(single.LongFormattedTag + types.TagPathSeparator + types.Placeholder) {
			break
		}
	}

	return entry.LongTag + tag[endIndex:], nil
}

// ToShort reduces a tag to its short form. The rightmost segment known
// to the schema anchors the conversion; everything after it is carried
// over verbatim, and the path up to and including the anchor must equal
// the anchor's registered long form.
func (c TagConverter) ToShort(tag string) (string, []types.Issue) {
	formatted := formatTag(tag)
	segments := strings.Split(formatted, types.TagPathSeparator)

	end := len(formatted)
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		start := end - len(segment)

		mapped, ok := c.mapping.Lookup(segment)
		if !ok {
			end = start - 1
			continue
		}

		walked := formatted[:end]
		entry, ok := entryForLongForm(mapped, walked)
		if ok {
			return entry.ShortTag + tag[end:], nil
		}
		if !mapped.Unique() {
			issue := types.ErrorIssue(types.IssueAmbiguousShortTag, tag,
				fmt.Sprintf("short tag %q names multiple schema nodes", segment))
			return tag, []types.Issue{issue}
		}
		issue := types.ErrorIssue(types.IssueInvalidParentNode, tag,
			fmt.Sprintf("%q does not match the schema path of %q", walked, segment))
		return tag, []types.Issue{issue}
	}

	issue := types.ErrorIssue(types.IssueInvalidTag, tag,
		fmt.Sprintf("no schema tag found in %q", tag))
	return tag, []types.Issue{issue}
}

// entryForLongForm picks the mapping entry whose registered long form
// equals the walked path. Duplicate short names are resolvable here:
// the full path identifies the node.
func entryForLongForm(mapped *types.MappingEntry, walked string) (types.TagEntry, bool) {
	var match types.TagEntry
	count := 0
	for _, entry := range mapped.Entries {
		if entry.LongFormattedTag == walked {
			match = entry
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return types.TagEntry{}, false
}
