package bib

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gorewood/mendeley2bib/internal/latex"
)

// Columns read by the built-in computed rules.
const (
	ColumnMonth    = "month"
	ColumnPages    = "pages"
	ColumnUserType = "userType"
)

var monthMacros = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var pageRange = regexp.MustCompile(`-+`)

// computeRegistry holds the named functions usable from mapping files.
var computeRegistry = map[string]ComputeFunc{
	"authors":          contributorList(RoleAuthor),
	"editors":          contributorList(RoleEditor),
	"month":            monthMacro,
	"pages":            pageRangeField,
	"tags":             joinedList(Resolver.Tags),
	"keywords":         joinedList(Resolver.Keywords),
	"url":              firstURL,
	"howpublished-url": howPublishedURL,
	"user-type":        userType,
}

// LookupCompute returns the built-in computed function registered as name.
func LookupCompute(name string) (ComputeFunc, bool) {
	fn, ok := computeRegistry[name]
	return fn, ok
}

// ComputeNames lists the registered computed functions, sorted.
func ComputeNames() []string {
	names := make([]string, 0, len(computeRegistry))
	for name := range computeRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// computed builds a ComputedRule backed by a registry entry.
func computed(key, name string) Rule {
	fn, ok := computeRegistry[name]
	if !ok {
		panic(fmt.Sprintf("bib: unknown computed function %q", name))
	}
	return Computed(key, name, fn)
}

// contributorList joins contributors of a role as "Last, First and ...".
func contributorList(role Role) ComputeFunc {
	return func(ctx context.Context, env Env, rec Record) (string, error) {
		people, err := env.Resolver.Contributors(ctx, rec.ID(), role)
		if err != nil {
			return "", fmt.Errorf("listing %s contributors of document %d: %w", role, rec.ID(), err)
		}
		names := make([]string, 0, len(people))
		for _, person := range people {
			if person.LastName == "" && person.FirstNames == "" {
				continue
			}
			names = append(names, person.Name())
		}
		return latex.Escape(strings.Join(names, " and "))
	}
}

// monthMacro renders the month as a bare biblatex macro, which must not
// be braced.
func monthMacro(_ context.Context, _ Env, rec Record) (string, error) {
	month, ok := rec.Int(ColumnMonth)
	if !ok || month < 1 || month > 12 {
		return "", nil
	}
	return monthMacros[month-1], nil
}

func pageRangeField(_ context.Context, _ Env, rec Record) (string, error) {
	pages, ok, err := rec.Text(ColumnPages)
	if err != nil || !ok {
		return "", err
	}
	return latex.Escape(pageRange.ReplaceAllString(pages, "--"))
}

// joinedList joins a child collection with bare commas.
func joinedList(list func(Resolver, context.Context, int64) ([]string, error)) ComputeFunc {
	return func(ctx context.Context, env Env, rec Record) (string, error) {
		items, err := list(env.Resolver, ctx, rec.ID())
		if err != nil {
			return "", fmt.Errorf("listing attachments of document %d: %w", rec.ID(), err)
		}
		items = slices.DeleteFunc(slices.Clone(items), func(s string) bool { return s == "" })
		return latex.Escape(strings.Join(items, ","))
	}
}

func documentURL(ctx context.Context, env Env, rec Record) (string, error) {
	urls, err := env.Resolver.URLs(ctx, rec.ID())
	if err != nil {
		return "", fmt.Errorf("listing urls of document %d: %w", rec.ID(), err)
	}
	for _, u := range urls {
		if u != "" {
			return u, nil
		}
	}
	return "", nil
}

func firstURL(ctx context.Context, env Env, rec Record) (string, error) {
	u, err := documentURL(ctx, env, rec)
	if err != nil || u == "" {
		return "", err
	}
	return latex.EscapeURL(u), nil
}

func howPublishedURL(ctx context.Context, env Env, rec Record) (string, error) {
	u, err := documentURL(ctx, env, rec)
	if err != nil || u == "" {
		return "", err
	}
	return latex.URLCommand(u), nil
}

// userType copies the user-entered type and warns when it is missing,
// since the source never fills it in.
func userType(_ context.Context, env Env, rec Record) (string, error) {
	value, ok, err := rec.Text(ColumnUserType)
	if err != nil {
		return "", err
	}
	if !ok {
		msg := fmt.Sprintf("entry %q of type %q requires a \"type\" field that Mendeley does not set; "+
			"use the Type field to specify e.g. \"Master's Thesis\" or \"PhD Thesis\"", rec.label(), rec.Type())
		env.Report(Issue{
			Kind:     IssueMissingUserField,
			Severity: SeverityWarning,
			RecordID: rec.ID(),
			Message:  msg,
		})
		return "", nil
	}
	return latex.Escape(value)
}
