package ssmenv

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ParameterType is the SSM type of a parameter. It is informational only;
// decryption of SecureString values is done by the store.
type ParameterType string

// Parameter types.
const (
	TypeString       ParameterType = "String"
	TypeSecureString ParameterType = "SecureString"
	TypeStringList   ParameterType = "StringList"
)

// Parameter is a single value read from Parameter Store.
type Parameter struct {
	Name    string
	Value   string
	Type    ParameterType
	Version int64
}

func fromSDK(p types.Parameter) Parameter {
	return Parameter{
		Name:    aws.ToString(p.Name),
		Value:   aws.ToString(p.Value),
		Type:    ParameterType(p.Type),
		Version: p.Version,
	}
}

func fromSDKList(params []types.Parameter) []Parameter {
	out := make([]Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, fromSDK(p))
	}
	return out
}

// FetchResult is one page of parameters. NextToken is nil when there are no
// more pages.
type FetchResult struct {
	Parameters []Parameter
	NextToken  *string
}

// EmptyResult returns a result without parameters or cursor. Pagination stops
// after it.
func EmptyResult() FetchResult {
	return FetchResult{}
}
