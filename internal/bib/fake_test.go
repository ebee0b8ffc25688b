package bib

import (
	"context"
	"errors"
)

// fakeSource is an in-memory Resolver and KeyWriter.
type fakeSource struct {
	contributors map[int64]map[Role][]Contributor
	tags         map[int64][]string
	keywords     map[int64][]string
	urls         map[int64][]string

	err      error
	writeErr error
	written  map[int64]string
	calls    int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		contributors: make(map[int64]map[Role][]Contributor),
		tags:         make(map[int64][]string),
		keywords:     make(map[int64][]string),
		urls:         make(map[int64][]string),
		written:      make(map[int64]string),
	}
}

func (f *fakeSource) withAuthors(id int64, authors ...Contributor) *fakeSource {
	return f.withContributors(id, RoleAuthor, authors...)
}

func (f *fakeSource) withContributors(id int64, role Role, people ...Contributor) *fakeSource {
	if f.contributors[id] == nil {
		f.contributors[id] = make(map[Role][]Contributor)
	}
	f.contributors[id][role] = people
	return f
}

func (f *fakeSource) Contributors(_ context.Context, id int64, role Role) ([]Contributor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.contributors[id][role], nil
}

func (f *fakeSource) Tags(_ context.Context, id int64) ([]string, error) {
	f.calls++
	return f.tags[id], f.err
}

func (f *fakeSource) Keywords(_ context.Context, id int64) ([]string, error) {
	f.calls++
	return f.keywords[id], f.err
}

func (f *fakeSource) URLs(_ context.Context, id int64) ([]string, error) {
	f.calls++
	return f.urls[id], f.err
}

func (f *fakeSource) SetCitationKey(_ context.Context, id int64, key string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written[id] = key
	return nil
}

var errSourceDown = errors.New("source unavailable")

// collectIssues returns a Reporter appending to *dst.
func collectIssues(dst *[]Issue) Reporter {
	return ReporterFunc(func(issue Issue) { *dst = append(*dst, issue) })
}
