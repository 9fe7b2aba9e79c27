package ssmenv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"go.uber.org/zap"
)

const (
	// MaxBeginsWithFetchSize is the largest page DescribeParameters returns.
	MaxBeginsWithFetchSize = 50

	// GetParameters accepts at most this many names per request.
	maxGetParametersNames = 10
)

// BeginsWithFetcher reads parameters whose name starts with a prefix. Names
// are found with DescribeParameters and their values read with
// GetParameters, so it needs both ssm:DescribeParameters and
// ssm:GetParameters permissions.
type BeginsWithFetcher struct {
	fetcherBase

	beginsWith []string
	maxResults int32
}

// NewBeginsWithFetcher creates a BeginsWithFetcher. The begins_with key is
// required and holds one or more prefixes; fetch_size defaults to
// MaxBeginsWithFetchSize.
func NewBeginsWithFetcher(ctx context.Context, cfg Config) (*BeginsWithFetcher, error) {
	raw, _ := cfg.value(KeyBeginsWith)
	if raw == nil {
		return nil, argumentError(KeyBeginsWith, "required")
	}
	prefixes, err := parseStrings(raw)
	if err != nil {
		return nil, argumentError(KeyBeginsWith, "want string or list of strings, got %T", raw)
	}
	if len(prefixes) == 0 {
		return nil, argumentError(KeyBeginsWith, "required")
	}
	size, err := parseFetchSize(cfg[KeyFetchSize], MaxBeginsWithFetchSize)
	if err != nil {
		return nil, err
	}
	base, err := newFetcherBase(ctx, cfg, "begins_with")
	if err != nil {
		return nil, err
	}
	return &BeginsWithFetcher{
		fetcherBase: base,
		beginsWith:  prefixes,
		maxResults:  size,
	}, nil
}

// Each calls fn for every parameter matching the prefixes.
func (f *BeginsWithFetcher) Each(ctx context.Context, fn func(Parameter) error) error {
	return f.each(ctx, f.FetchPage, fn)
}

// FetchPage fetches a single page. A page without any described parameters
// skips reading values but keeps the cursor; without a cursor it is
// EmptyResult.
func (f *BeginsWithFetcher) FetchPage(ctx context.Context, nextToken *string) (FetchResult, error) {
	desc, err := f.cli.DescribeParameters(ctx, &ssm.DescribeParametersInput{
		ParameterFilters: []types.ParameterStringFilter{{
			Key:    aws.String("Name"),
			Option: aws.String("BeginsWith"),
			Values: f.beginsWith,
		}},
		MaxResults: aws.Int32(f.maxResults),
		NextToken:  nextToken,
	})
	if err != nil {
		return FetchResult{}, err
	}
	if len(desc.Parameters) == 0 {
		if desc.NextToken == nil {
			return EmptyResult(), nil
		}
		return FetchResult{NextToken: desc.NextToken}, nil
	}

	names := make([]string, 0, len(desc.Parameters))
	for _, p := range desc.Parameters {
		names = append(names, aws.ToString(p.Name))
	}
	params, err := f.getParameters(ctx, names)
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{
		Parameters: params,
		NextToken:  desc.NextToken,
	}, nil
}

func (f *BeginsWithFetcher) getParameters(ctx context.Context, names []string) ([]Parameter, error) {
	out := make([]Parameter, 0, len(names))
	for start := 0; start < len(names); start += maxGetParametersNames {
		end := start + maxGetParametersNames
		if end > len(names) {
			end = len(names)
		}
		resp, err := f.cli.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          names[start:end],
			WithDecryption: aws.Bool(f.withDecryption),
		})
		if err != nil {
			return nil, err
		}
		if len(resp.InvalidParameters) > 0 {
			f.log.Warn("Parameters disappeared between describe and get",
				zap.Strings("names", resp.InvalidParameters),
			)
		}
		out = append(out, fromSDKList(resp.Parameters)...)
	}
	return out, nil
}
