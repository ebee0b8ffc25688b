package bib

import (
	"context"

	"github.com/gorewood/mendeley2bib/internal/latex"
)

// ComputeFunc builds the value of a computed field. It returns the
// ready-to-emit text, already escaped, or "" to omit the field.
type ComputeFunc func(ctx context.Context, env Env, rec Record) (string, error)

// Env gives computed rules access to the resolver and the issue sink of
// the conversion in progress.
type Env struct {
	Resolver Resolver
	report   func(Issue)
}

// Report records a non-fatal issue for the current record.
func (e Env) Report(issue Issue) {
	if e.report != nil {
		e.report(issue)
	}
}

// Rule produces one output field from a record. The implementations are
// DirectRule, RenamedRule and ComputedRule.
type Rule interface {
	// Key is the output field name.
	Key() string
	eval(ctx context.Context, env Env, rec Record) (string, error)
}

// DirectRule copies a column to a field of the same name.
type DirectRule struct {
	Column string
}

// Direct returns a rule copying column to a field of the same name.
func Direct(column string) Rule {
	return DirectRule{Column: column}
}

// Key implements Rule.
func (r DirectRule) Key() string { return r.Column }

func (r DirectRule) eval(_ context.Context, _ Env, rec Record) (string, error) {
	return escapeColumn(rec, r.Column)
}

// RenamedRule copies a column to a field with a different name.
type RenamedRule struct {
	Field  string
	Column string
}

// Renamed returns a rule copying column to the field key.
func Renamed(key, column string) Rule {
	return RenamedRule{Field: key, Column: column}
}

// Key implements Rule.
func (r RenamedRule) Key() string { return r.Field }

func (r RenamedRule) eval(_ context.Context, _ Env, rec Record) (string, error) {
	return escapeColumn(rec, r.Column)
}

// ComputedRule builds a field with a function. Name identifies the
// function in mapping files.
type ComputedRule struct {
	Field string
	Name  string
	Func  ComputeFunc
}

// Computed returns a rule that fills key with fn's result.
func Computed(key, name string, fn ComputeFunc) Rule {
	return ComputedRule{Field: key, Name: name, Func: fn}
}

// Key implements Rule.
func (r ComputedRule) Key() string { return r.Field }

func (r ComputedRule) eval(ctx context.Context, env Env, rec Record) (string, error) {
	if r.Func == nil {
		return "", nil
	}
	return r.Func(ctx, env, rec)
}

// escapeColumn decodes and escapes a column, returning "" when absent.
func escapeColumn(rec Record, column string) (string, error) {
	text, ok, err := rec.Text(column)
	if err != nil || !ok {
		return "", err
	}
	return latex.Escape(text)
}
