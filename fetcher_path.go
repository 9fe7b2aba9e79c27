package ssmenv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// MaxPathFetchSize is the largest page GetParametersByPath returns.
const MaxPathFetchSize = 10

// PathFetcher reads all parameters below a path with GetParametersByPath.
// It needs the ssm:GetParametersByPath permission on the path.
type PathFetcher struct {
	fetcherBase

	path       string
	recursive  bool
	maxResults int32
}

// NewPathFetcher creates a PathFetcher. The path key is required; recursive
// defaults to false and fetch_size to MaxPathFetchSize.
func NewPathFetcher(ctx context.Context, cfg Config) (*PathFetcher, error) {
	path := cfg.str(KeyPath)
	if path == "" {
		return nil, argumentError(KeyPath, "required")
	}
	size, err := parseFetchSize(cfg[KeyFetchSize], MaxPathFetchSize)
	if err != nil {
		return nil, err
	}
	base, err := newFetcherBase(ctx, cfg, "path")
	if err != nil {
		return nil, err
	}
	return &PathFetcher{
		fetcherBase: base,
		path:        path,
		recursive:   parseBoolOption(cfg[KeyRecursive], false),
		maxResults:  size,
	}, nil
}

// Each calls fn for every parameter below the path.
func (f *PathFetcher) Each(ctx context.Context, fn func(Parameter) error) error {
	return f.each(ctx, f.FetchPage, fn)
}

// FetchPage fetches a single page.
func (f *PathFetcher) FetchPage(ctx context.Context, nextToken *string) (FetchResult, error) {
	resp, err := f.cli.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(f.path),
		Recursive:      aws.Bool(f.recursive),
		WithDecryption: aws.Bool(f.withDecryption),
		MaxResults:     aws.Int32(f.maxResults),
		NextToken:      nextToken,
	})
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{
		Parameters: fromSDKList(resp.Parameters),
		NextToken:  resp.NextToken,
	}, nil
}
