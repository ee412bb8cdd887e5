package catapult

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultPageSize = 25

// Iter is a forward-only iterator over a paginated collection. Advancing past the
// entries already buffered issues a GET for the next page. Iterators are finite,
// not restartable and not safe for concurrent use.
type Iter[T any] struct {
	fetch func(ctx context.Context) ([]T, bool, error)
	items []T
	pos   int
	cur   T
	more  bool
	err   error
}

// Next advances to the next entry, fetching more pages as needed. It returns false
// when the collection is exhausted or a fetch fails, in which case Err is set.
func (it *Iter[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for {
		if it.pos < len(it.items) {
			it.cur = it.items[it.pos]
			it.pos++
			return true
		}
		if !it.more {
			return false
		}
		it.items, it.more, it.err = it.fetch(ctx)
		it.pos = 0
		if it.err != nil {
			return false
		}
		if len(it.items) == 0 && !it.more {
			return false
		}
	}
}

// Current returns the entry the iterator is positioned on
func (it *Iter[T]) Current() T {
	return it.cur
}

// Err returns the error that stopped iteration, if any
func (it *Iter[T]) Err() error {
	return it.err
}

// All drains the iterator, entries yielded before an error remain valid
func (it *Iter[T]) All(ctx context.Context) ([]T, error) {
	var all []T
	for it.Next(ctx) {
		all = append(all, it.Current())
	}
	return all, it.Err()
}

// listIter creates an iterator over the collection at the passed in path, following
// Link rel="next" headers. The hook, when given, is invoked on every fetched entry.
func listIter[T any](c *Client, path string, query url.Values, hook func(T)) *Iter[T] {
	nextURL := path
	first := true

	fetch := func(ctx context.Context) ([]T, bool, error) {
		q := query
		if !first {
			q = nil
		}
		var page []T
		resp, err := c.get(ctx, nextURL, q, &page)
		if err != nil {
			return nil, false, err
		}
		first = false
		nextURL = nextLink(resp.header)
		if hook != nil {
			for _, item := range page {
				hook(item)
			}
		}
		return page, nextURL != "", nil
	}

	return &Iter[T]{fetch: fetch, more: true}
}

// PageIter iterates fixed-size pages using page/size query params, stopping after
// the first page shorter than the requested size.
type PageIter[T any] struct {
	client *Client
	path   string
	query  url.Values
	size   int
	page   int
	done   bool
	hook   func(T)
}

func pageIter[T any](c *Client, path string, query url.Values, size int, hook func(T)) *PageIter[T] {
	if size <= 0 {
		size = defaultPageSize
	}
	return &PageIter[T]{client: c, path: path, query: query, size: size, hook: hook}
}

// NextPage returns the next page of entries, or nil once the collection is exhausted
func (p *PageIter[T]) NextPage(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}

	query := url.Values{}
	for k, v := range p.query {
		query[k] = v
	}
	query.Set("page", strconv.Itoa(p.page))
	query.Set("size", strconv.Itoa(p.size))

	var page []T
	if _, err := p.client.get(ctx, p.path, query, &page); err != nil {
		return nil, err
	}
	p.page++
	if len(page) < p.size {
		p.done = true
	}
	if p.hook != nil {
		for _, item := range page {
			p.hook(item)
		}
	}
	return page, nil
}

// Iter adapts this page iterator into an entry iterator
func (p *PageIter[T]) Iter() *Iter[T] {
	fetch := func(ctx context.Context) ([]T, bool, error) {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, false, err
		}
		return page, !p.done, nil
	}
	return &Iter[T]{fetch: fetch, more: true}
}

// nextLink extracts the URL with relation "next" from Link headers, or empty string
func nextLink(header http.Header) string {
	for _, value := range header.Values("Link") {
		for _, link := range strings.Split(value, ",") {
			parts := strings.Split(link, ";")
			if len(parts) < 2 {
				continue
			}
			u := strings.Trim(strings.TrimSpace(parts[0]), "<>")
			for _, param := range parts[1:] {
				param = strings.TrimSpace(param)
				if param == `rel="next"` || param == "rel=next" {
					return u
				}
			}
		}
	}
	return ""
}
