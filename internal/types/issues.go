package types

// Issue is one validation outcome for one tag. Malformed input data is
// expected and reported as issues for the caller to aggregate; it is
// never raised as an error.
type Issue struct {
	Code     IssueCode
	Severity IssueSeverity
	Tag      string
	Message  string
}

// ErrorIssue builds an error-severity issue.
func ErrorIssue(code IssueCode, tag string, message string) Issue {
	return Issue{Code: code, Severity: IssueSeverityError, Tag: tag, Message: message}
}

// WarningIssue builds a warning-severity issue.
func WarningIssue(code IssueCode, tag string, message string) Issue {
	return Issue{Code: code, Severity: IssueSeverityWarning, Tag: tag, Message: message}
}

// HasErrors reports whether any issue in the list is error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == IssueSeverityError {
			return true
		}
	}
	return false
}
