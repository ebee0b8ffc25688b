package bib

import "errors"

// Sentinel errors wrapped by SkipError.
var (
	ErrUnsupportedType    = errors.New("unsupported entry type")
	ErrMissingCitationKey = errors.New("no citation key could be generated")
	ErrFieldDecode        = errors.New("field cannot be decoded")
)

// IssueKind classifies a problem met while converting a record.
type IssueKind string

// Issue kinds.
const (
	IssueUnsupportedType    IssueKind = "unsupported-type"
	IssueMissingCitationKey IssueKind = "missing-citation-key"
	IssueKeyNotPersisted    IssueKind = "key-not-persisted"
	IssueKeyWritten         IssueKind = "key-written"
	IssueFieldDecodeFailure IssueKind = "field-decode-failure"
	IssueMissingUserField   IssueKind = "missing-user-field"
)

// Severity tells whether an issue is informational or a warning.
type Severity string

// Severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Issue is a report about one record. Issues never stop a conversion run.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	RecordID int64     `json:"record_id"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
}

// Reporter receives issues as they occur.
type Reporter interface {
	Report(issue Issue)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(issue Issue)

// Report calls f(issue).
func (f ReporterFunc) Report(issue Issue) {
	f(issue)
}

type discardReporter struct{}

func (discardReporter) Report(Issue) {}

// SkipError reports a record that was excluded from the output.
type SkipError struct {
	Kind     IssueKind
	RecordID int64
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *SkipError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *SkipError) Unwrap() error {
	return e.Err
}

// Issue returns the warning describing the skip.
func (e *SkipError) Issue() Issue {
	return Issue{
		Kind:     e.Kind,
		Severity: SeverityWarning,
		RecordID: e.RecordID,
		Message:  e.Message,
		Err:      e.Err,
	}
}
