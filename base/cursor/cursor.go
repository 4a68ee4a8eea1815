// Package cursor walks continuation-token paginated upstream apis.
//
// A Pager is lazy (nothing is fetched before Next), finite (it stops when the
// upstream returns no continuation, or when MaxPages is reached) and
// restartable (Reset rewinds it to the first page).
package cursor

import (
	"errors"

	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
)

const DefaultMaxPages = 500

var (
	ErrTooManyPages = errors.New("too many pages")
	ErrCursorLoop   = errors.New("upstream returned an already visited cursor")
)

// PageFunc fetches the page addressed by cursor ("" is the first page) and
// returns the continuation for the following one ("" when exhausted).
type PageFunc func(ctx bCtx.Ctx, cursor string) (next string, err error)

type Pager struct {
	fetch    PageFunc
	maxPages int

	cursor  string
	pages   int
	done    bool
	visited map[string]struct{}
}

type Option func(*Pager)

func WithMaxPages(n int) Option {
	return func(p *Pager) {
		p.maxPages = n
	}
}

func New(fetch PageFunc, opts ...Option) *Pager {
	p := &Pager{
		fetch:    fetch,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

// Reset rewinds the pager to the first page
func (p *Pager) Reset() {
	p.cursor = ""
	p.pages = 0
	p.done = false
	p.visited = map[string]struct{}{}
}

// Pages returns how many pages were fetched since the last Reset
func (p *Pager) Pages() int {
	return p.pages
}

// Next fetches one page. It returns false once the sequence is exhausted.
// A fetch error ends the sequence as well.
func (p *Pager) Next(ctx bCtx.Ctx) (bool, error) {
	if p.done {
		return false, nil
	}
	if p.maxPages > 0 && p.pages >= p.maxPages {
		p.done = true
		ctx.WithField("maxPages", p.maxPages).Error("pager stopped")
		return false, ErrTooManyPages
	}

	next, err := p.fetch(ctx, p.cursor)
	if err != nil {
		p.done = true
		return false, err
	}
	p.pages++

	if next == "" {
		p.done = true
		return true, nil
	}
	if _, ok := p.visited[next]; ok || next == p.cursor {
		p.done = true
		ctx.WithFields(log.Fields{
			"cursor": next,
			"pages":  p.pages,
		}).Error("cursor loop")
		return true, ErrCursorLoop
	}
	p.visited[p.cursor] = struct{}{}
	p.cursor = next
	return true, nil
}

// Walk drains the pager from the first page
func Walk(ctx bCtx.Ctx, fetch PageFunc, opts ...Option) error {
	p := New(fetch, opts...)
	for {
		ok, err := p.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
