package bib

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gorewood/mendeley2bib/internal/latex"
)

// Converter turns records into entries using a mapping, a resolver for
// child collections and a citation key policy.
type Converter struct {
	mapping  Mapping
	resolver Resolver
	keys     KeyPolicy
	reporter Reporter
}

// NewConverter returns a converter. A nil reporter discards issues;
// ConvertAll still returns them in its Result.
func NewConverter(mapping Mapping, resolver Resolver, keys KeyPolicy, reporter Reporter) *Converter {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &Converter{mapping: mapping, resolver: resolver, keys: keys, reporter: reporter}
}

// Result is the outcome of converting a record set.
type Result struct {
	Count  int     `json:"count"`
	Text   string  `json:"text"`
	Issues []Issue `json:"issues,omitempty"`

	// Entries holds the rendered entries in output order.
	Entries []Entry `json:"-"`
}

// Warnings returns the number of warning-level issues.
func (r Result) Warnings() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// ConvertAll converts records in order and concatenates the rendered
// entries. Skipped records add nothing to Count or Text and produce
// exactly one warning each. Only resolver or key writer failures that
// are not per-record conditions abort the run.
func (c *Converter) ConvertAll(ctx context.Context, records []Record) (Result, error) {
	var (
		result Result
		text   strings.Builder
	)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			result.Text = text.String()
			return result, err
		}

		entry, issues, err := c.Convert(ctx, rec)
		var skip *SkipError
		switch {
		case errors.As(err, &skip):
			issues = append(issues, skip.Issue())
		case err != nil:
			result.Text = text.String()
			return result, err
		default:
			text.WriteString(entry.String())
			result.Entries = append(result.Entries, entry)
			result.Count++
		}

		for _, issue := range issues {
			c.reporter.Report(issue)
		}
		result.Issues = append(result.Issues, issues...)
	}
	result.Text = text.String()
	return result, nil
}

// Convert builds the entry for one record. The issues returned belong to
// the record. When the record is skipped the error is a *SkipError and
// only informational issues are returned, so the skip itself stays the
// record's single warning. Any other error comes from the resolver.
func (c *Converter) Convert(ctx context.Context, rec Record) (Entry, []Issue, error) {
	rec = rec.Clone()

	tag, rules, ok := c.mapping.Lookup(rec.Type())
	if !ok {
		return Entry{}, nil, &SkipError{
			Kind:     IssueUnsupportedType,
			RecordID: rec.ID(),
			Message:  fmt.Sprintf("entry %q has unsupported type %q; skipped", rec.label(), rec.Type()),
			Err:      ErrUnsupportedType,
		}
	}

	var issues []Issue
	outcome, err := c.keys.EnsureKey(ctx, c.resolver, rec)
	if err != nil {
		return Entry{}, nil, err
	}
	if outcome.Generated {
		issues = append(issues, keyIssue(rec, outcome))
		rec = rec.WithCitationKey(outcome.Key)
	}

	env := Env{
		Resolver: c.resolver,
		report:   func(issue Issue) { issues = append(issues, issue) },
	}
	entry := Entry{Tag: tag, Key: outcome.Key}
	for _, rule := range rules {
		value, err := rule.eval(ctx, env, rec)
		if err != nil {
			if isDecodeFailure(err) {
				return Entry{}, informational(issues), &SkipError{
					Kind:     IssueFieldDecodeFailure,
					RecordID: rec.ID(),
					Message:  fmt.Sprintf("entry %q (document %d): field %q cannot be decoded: %v; skipped", outcome.Key, rec.ID(), rule.Key(), err),
					Err:      err,
				}
			}
			return Entry{}, nil, fmt.Errorf("field %q of entry %q: %w", rule.Key(), outcome.Key, err)
		}
		if value == "" {
			continue
		}
		entry.Fields = append(entry.Fields, Field{Key: rule.Key(), Value: value})
	}
	return entry, issues, nil
}

func keyIssue(rec Record, outcome KeyOutcome) Issue {
	switch {
	case outcome.Persisted:
		return Issue{
			Kind:     IssueKeyWritten,
			Severity: SeverityInfo,
			RecordID: rec.ID(),
			Message:  fmt.Sprintf("generated citation key %q for %q and saved it to the database", outcome.Key, rec.label()),
		}
	case outcome.WriteErr != nil:
		return Issue{
			Kind:     IssueKeyNotPersisted,
			Severity: SeverityWarning,
			RecordID: rec.ID(),
			Message:  fmt.Sprintf("generated citation key %q for %q but could not save it: %v", outcome.Key, rec.label(), outcome.WriteErr),
			Err:      outcome.WriteErr,
		}
	default:
		msg := fmt.Sprintf("generated citation key %q for %q but did not save it; "+
			"it may change if author or year change (enable key write-back to keep it)", outcome.Key, rec.label())
		return Issue{
			Kind:     IssueKeyNotPersisted,
			Severity: SeverityWarning,
			RecordID: rec.ID(),
			Message:  msg,
		}
	}
}

func isDecodeFailure(err error) bool {
	return errors.Is(err, ErrFieldDecode) ||
		errors.Is(err, latex.ErrInvalidUTF8) ||
		errors.Is(err, latex.ErrUntranslatable)
}

func informational(issues []Issue) []Issue {
	var kept []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityInfo {
			kept = append(kept, issue)
		}
	}
	return kept
}
