package bib

import (
	"context"
	"fmt"
)

// KeyPolicy decides what happens to citation keys derived for records
// that have none.
type KeyPolicy struct {
	// WriteBack persists derived keys through Writer.
	WriteBack bool
	Writer    KeyWriter
}

// KeyOutcome describes the citation key chosen for a record.
type KeyOutcome struct {
	Key       string
	Generated bool
	Persisted bool
	// WriteErr is set when persisting a derived key failed.
	WriteErr error
}

// EnsureKey returns the record's citation key, deriving it from the first
// author's surname and the year when unset. Derived keys are not checked
// against other records, so two records can share one.
//
// A record with neither usable author nor year yields a *SkipError of
// kind IssueMissingCitationKey; a stored key that cannot be decoded
// yields one of kind IssueFieldDecodeFailure and is never replaced.
// Resolver errors are returned unchanged.
func (p KeyPolicy) EnsureKey(ctx context.Context, resolver Resolver, rec Record) (KeyOutcome, error) {
	key, ok, err := rec.Text(ColumnCitationKey)
	if err != nil {
		return KeyOutcome{}, &SkipError{
			Kind:     IssueFieldDecodeFailure,
			RecordID: rec.ID(),
			Message:  fmt.Sprintf("entry %q (document %d): stored citation key cannot be decoded: %v; skipped", rec.label(), rec.ID(), err),
			Err:      err,
		}
	}
	if ok && key != "" {
		return KeyOutcome{Key: key}, nil
	}

	authors, err := resolver.Contributors(ctx, rec.ID(), RoleAuthor)
	if err != nil {
		return KeyOutcome{}, fmt.Errorf("listing authors of document %d: %w", rec.ID(), err)
	}
	year, hasYear := rec.Year()
	if len(authors) == 0 || authors[0].LastName == "" || !hasYear {
		return KeyOutcome{}, &SkipError{
			Kind:     IssueMissingCitationKey,
			RecordID: rec.ID(),
			Message:  fmt.Sprintf("entry %q has no citation key and no author and year to generate one from; skipped", rec.label()),
			Err:      ErrMissingCitationKey,
		}
	}

	out := KeyOutcome{Key: authors[0].LastName + year, Generated: true}
	if p.WriteBack && p.Writer != nil {
		if err := p.Writer.SetCitationKey(ctx, rec.ID(), out.Key); err != nil {
			out.WriteErr = err
		} else {
			out.Persisted = true
		}
	}
	return out, nil
}
