package ssmenv

import (
	"context"

	"go.uber.org/zap"
)

// A Fetcher produces parameters one at a time. Each calls fn for every
// parameter in order and stops at the first error, which it returns.
type Fetcher interface {
	Each(ctx context.Context, fn func(Parameter) error) error
}

// PageFunc fetches the page after nextToken. nextToken is nil for the first
// page.
type PageFunc func(ctx context.Context, nextToken *string) (FetchResult, error)

// Paginate returns a Fetcher that drains page page by page. Iteration ends
// only when a page has no next token; empty pages with a token are followed.
func Paginate(page PageFunc) Fetcher {
	return &pager{page: page, log: zap.NewNop()}
}

type pager struct {
	page PageFunc
	log  *zap.Logger
}

func (p *pager) Each(ctx context.Context, fn func(Parameter) error) error {
	if p.page == nil {
		return ErrNotImplemented
	}
	var token *string
	for pages := 1; ; pages++ {
		res, err := p.page(ctx, token)
		if err != nil {
			return err
		}
		p.log.Debug("Fetched page",
			zap.Int("page", pages),
			zap.Int("parameters", len(res.Parameters)),
			zap.Bool("more", res.NextToken != nil),
		)
		for _, param := range res.Parameters {
			if err := fn(param); err != nil {
				return err
			}
		}
		if res.NextToken == nil {
			return nil
		}
		token = res.NextToken
	}
}

// fetcherBase holds the state shared by the built in fetchers.
type fetcherBase struct {
	cli            Client
	withDecryption bool
	log            *zap.Logger
}

func newFetcherBase(ctx context.Context, cfg Config, name string) (fetcherBase, error) {
	cli, err := newClient(ctx, cfg)
	if err != nil {
		return fetcherBase{}, err
	}
	return fetcherBase{
		cli:            cli,
		withDecryption: parseBoolOption(cfg[KeyDecryption], true),
		log:            cfg.logger().Named(name),
	}, nil
}

func (b fetcherBase) each(ctx context.Context, page PageFunc, fn func(Parameter) error) error {
	p := &pager{page: page, log: b.log}
	return p.Each(ctx, fn)
}

// FetchMode names a built in fetcher.
type FetchMode string

// Fetch modes.
const (
	FetchPath       FetchMode = "path"
	FetchBeginsWith FetchMode = "begins_with"
)

// NewFetcher builds the fetcher selected by the fetch key: a FetchMode (or
// its string form) or a Fetcher, which is returned as is. Without a fetch key
// the prefix fetcher is used if begins_with is set and the path fetcher
// otherwise.
func NewFetcher(ctx context.Context, cfg Config) (Fetcher, error) {
	raw, ok := cfg.value(KeyFetch)
	if !ok {
		if _, ok := cfg.value(KeyBeginsWith); ok {
			return newFetcherByMode(ctx, cfg, FetchBeginsWith)
		}
		return newFetcherByMode(ctx, cfg, FetchPath)
	}
	switch v := raw.(type) {
	case Fetcher:
		return v, nil
	case FetchMode:
		return newFetcherByMode(ctx, cfg, v)
	case string:
		return newFetcherByMode(ctx, cfg, FetchMode(v))
	}
	return nil, argumentError(KeyFetch, "want %q, %q or a Fetcher, got %T", FetchPath, FetchBeginsWith, raw)
}

func newFetcherByMode(ctx context.Context, cfg Config, mode FetchMode) (Fetcher, error) {
	switch mode {
	case FetchPath:
		f, err := NewPathFetcher(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return f, nil
	case FetchBeginsWith:
		f, err := NewBeginsWithFetcher(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, argumentError(KeyFetch, "unknown fetch mode %q", mode)
}
