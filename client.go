package ssmenv

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Client is the SSM client. *ssm.Client satisfies it.
type Client interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// newClient returns the client in cfg, or creates one from the shared AWS
// config and the connection options in cfg. Loading the config does not call
// AWS.
func newClient(ctx context.Context, cfg Config) (Client, error) {
	if v, ok := cfg.value(KeyClient); ok {
		c, ok := v.(Client)
		if !ok {
			return nil, argumentError(KeyClient, "%T does not implement Client", v)
		}
		return c, nil
	}

	var opts []func(*config.LoadOptions) error
	if region := cfg.str(KeyRegion); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile := cfg.str(KeyProfile); profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if id := cfg.str(KeyAccessKeyID); id != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, cfg.str(KeySecretAccessKey), cfg.str(KeySessionToken)),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := cfg.str(KeyEndpoint)
	return ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
