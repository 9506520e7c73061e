package types

type IssueSeverity string

const (
	IssueSeverityError   IssueSeverity = "error"
	IssueSeverityWarning IssueSeverity = "warning"
)

type IssueCode string

const (
	IssueInvalidTag        IssueCode = "invalid_tag"
	IssueExtendedTag       IssueCode = "extended_tag"
	IssueInvalidValue      IssueCode = "invalid_value"
	IssueInvalidUnit       IssueCode = "invalid_unit"
	IssueMissingUnit       IssueCode = "missing_unit"
	IssueAmbiguousShortTag IssueCode = "ambiguous_short_tag"
	IssueInvalidParentNode IssueCode = "invalid_parent_node"
	IssueUnknownLibrary    IssueCode = "unknown_library"
)

type ConvertDirection string

const (
	ConvertToLong  ConvertDirection = "long"
	ConvertToShort ConvertDirection = "short"
)
