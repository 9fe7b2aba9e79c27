package ssmenv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// mockSSM serves pages in the order they are requested and records every
// input it receives.
type mockSSM struct {
	pathPages     []*ssm.GetParametersByPathOutput
	describePages []*ssm.DescribeParametersOutput
	params        []types.Parameter
	err           error

	// errAfter fails every call after this many successful page calls.
	errAfter int

	pathCalls     []*ssm.GetParametersByPathInput
	describeCalls []*ssm.DescribeParametersInput
	getCalls      []*ssm.GetParametersInput
}

func (m *mockSSM) failing(calls int) bool {
	return m.err != nil && calls > m.errAfter
}

func (m *mockSSM) GetParametersByPath(_ context.Context, input *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	m.pathCalls = append(m.pathCalls, input)
	if m.failing(len(m.pathCalls)) {
		return nil, m.err
	}
	i := len(m.pathCalls) - 1
	if i >= len(m.pathPages) {
		return &ssm.GetParametersByPathOutput{}, nil
	}
	page := *m.pathPages[i]
	if !aws.ToBool(input.WithDecryption) {
		page.Parameters = encrypted(page.Parameters)
	}
	return &page, nil
}

func (m *mockSSM) DescribeParameters(_ context.Context, input *ssm.DescribeParametersInput, _ ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	m.describeCalls = append(m.describeCalls, input)
	if m.failing(len(m.describeCalls)) {
		return nil, m.err
	}
	i := len(m.describeCalls) - 1
	if i >= len(m.describePages) {
		return &ssm.DescribeParametersOutput{}, nil
	}
	return m.describePages[i], nil
}

func (m *mockSSM) GetParameters(_ context.Context, input *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	m.getCalls = append(m.getCalls, input)
	var out ssm.GetParametersOutput
	for _, name := range input.Names {
		found := false
		for _, p := range m.params {
			if aws.ToString(p.Name) != name {
				continue
			}
			out.Parameters = append(out.Parameters, p)
			found = true
		}
		if !found {
			out.InvalidParameters = append(out.InvalidParameters, name)
		}
	}
	if !aws.ToBool(input.WithDecryption) {
		out.Parameters = encrypted(out.Parameters)
	}
	return &out, nil
}

func encrypted(params []types.Parameter) []types.Parameter {
	out := make([]types.Parameter, len(params))
	for i, p := range params {
		if p.Type == types.ParameterTypeSecureString {
			p.Value = aws.String("<ENCRYPTED>")
		}
		out[i] = p
	}
	return out
}

func stringParam(name, value string) types.Parameter {
	return types.Parameter{
		Name:  aws.String(name),
		Value: aws.String(value),
		Type:  types.ParameterTypeString,
	}
}

func secureStringParam(name, value string) types.Parameter {
	return types.Parameter{
		Name:  aws.String(name),
		Value: aws.String(value),
		Type:  types.ParameterTypeSecureString,
	}
}

func pathPage(token *string, params ...types.Parameter) *ssm.GetParametersByPathOutput {
	return &ssm.GetParametersByPathOutput{Parameters: params, NextToken: token}
}

func describePage(token *string, names ...string) *ssm.DescribeParametersOutput {
	out := &ssm.DescribeParametersOutput{NextToken: token}
	for _, n := range names {
		out.Parameters = append(out.Parameters, types.ParameterMetadata{Name: aws.String(n)})
	}
	return out
}
