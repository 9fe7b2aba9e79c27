package ssmenv

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Config holds the options shared by every factory in this package. Keys are
// validated by the factory that reads them, when the component is built.
type Config map[string]interface{}

// Config keys.
const (
	KeyDecryption      = "decryption"
	KeyClient          = "client"
	KeyRegion          = "region"
	KeyProfile         = "profile"
	KeyEndpoint        = "endpoint"
	KeyAccessKeyID     = "access_key_id"
	KeySecretAccessKey = "secret_access_key"
	KeySessionToken    = "session_token"
	KeyFetch           = "fetch"
	KeyPath            = "path"
	KeyRecursive       = "recursive"
	KeyBeginsWith      = "begins_with"
	KeyFetchSize       = "fetch_size"
	KeyNaming          = "naming"
	KeyRemovedPrefix   = "removed_prefix"
	KeyDelimiter       = "delimiter"
	KeyOverwrite       = "overwrite"
	KeyScope           = "scope"
	KeyLogger          = "logger"
)

// value returns the value at key, treating nil the same as absent.
func (c Config) value(key string) (interface{}, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (c Config) str(key string) string {
	v, ok := c.value(key)
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

func (c Config) logger() *zap.Logger {
	if l, ok := c[KeyLogger].(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// parseBoolOption is the single coercion rule for boolean options: absent
// values take def, anything else is true only if it reads "true" ignoring
// case.
func parseBoolOption(raw interface{}, def bool) bool {
	if raw == nil {
		return def
	}
	return strings.EqualFold(strings.TrimSpace(cast.ToString(raw)), "true")
}

// parseFetchSize coerces raw to a page size in (0, limit]. Absent and
// non-positive values give limit, larger ones are clamped to it.
func parseFetchSize(raw interface{}, limit int32) (int32, error) {
	if raw == nil {
		return limit, nil
	}
	var n int64
	var err error
	if s, ok := raw.(string); ok {
		// cast reads a leading 0 as octal.
		n, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	} else {
		n, err = cast.ToInt64E(raw)
	}
	if err != nil {
		return 0, argumentError(KeyFetchSize, "not a number: %v", raw)
	}
	if n <= 0 || n > int64(limit) {
		return limit, nil
	}
	return int32(n), nil
}

// parseStrings accepts a single string or a list of strings.
func parseStrings(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		return v, nil
	}
	return cast.ToStringSliceE(raw)
}

// An Option sets a value in the Config used by Load and Overload.
type Option func(c Config)

// WithConfig copies every key of bag into the Config. Later options override
// it.
func WithConfig(bag map[string]interface{}) Option {
	return func(c Config) {
		for k, v := range bag {
			c[k] = v
		}
	}
}

// WithPath reads parameters below path using GetParametersByPath.
//
//   WithPath("/myapp/prod")
func WithPath(path string) Option {
	return func(c Config) {
		c[KeyPath] = path
	}
}

// WithRecursive includes parameters in sub paths of the path.
func WithRecursive(recursive bool) Option {
	return func(c Config) {
		c[KeyRecursive] = recursive
	}
}

// WithBeginsWith reads parameters whose name starts with any of the prefixes,
// using DescribeParameters and GetParameters.
func WithBeginsWith(prefixes ...string) Option {
	return func(c Config) {
		c[KeyBeginsWith] = prefixes
	}
}

// WithFetchSize sets the page size. It is clamped to the maximum the API
// allows: 10 for paths, 50 for prefixes.
func WithFetchSize(n int) Option {
	return func(c Config) {
		c[KeyFetchSize] = n
	}
}

// WithDecryption controls whether SecureString values are decrypted. The
// default is true.
func WithDecryption(decrypt bool) Option {
	return func(c Config) {
		c[KeyDecryption] = decrypt
	}
}

// WithClient sets the SSM client to use.
func WithClient(client Client) Option {
	return func(c Config) {
		c[KeyClient] = client
	}
}

// WithRegion sets the AWS region of the client created when no client is
// given.
func WithRegion(region string) Option {
	return func(c Config) {
		c[KeyRegion] = region
	}
}

// WithProfile sets the shared config profile of the created client.
func WithProfile(profile string) Option {
	return func(c Config) {
		c[KeyProfile] = profile
	}
}

// WithEndpoint overrides the SSM endpoint URL of the created client.
func WithEndpoint(url string) Option {
	return func(c Config) {
		c[KeyEndpoint] = url
	}
}

// WithStaticCredentials sets fixed credentials on the created client.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(c Config) {
		c[KeyAccessKeyID] = accessKeyID
		c[KeySecretAccessKey] = secretAccessKey
		c[KeySessionToken] = sessionToken
	}
}

// WithFetchMode selects one of the built in fetchers.
func WithFetchMode(mode FetchMode) Option {
	return func(c Config) {
		c[KeyFetch] = mode
	}
}

// WithFetcher uses f instead of the built in fetchers.
func WithFetcher(f Fetcher) Option {
	return func(c Config) {
		c[KeyFetch] = f
	}
}

// WithNamingMode selects one of the built in naming strategies.
func WithNamingMode(mode NamingMode) Option {
	return func(c Config) {
		c[KeyNaming] = mode
	}
}

// WithNaming uses s to derive keys from parameters.
func WithNaming(s NamingStrategy) Option {
	return func(c Config) {
		c[KeyNaming] = s
	}
}

// WithRemovedPrefix sets the prefix the snake case strategy strips from
// parameter names.
func WithRemovedPrefix(prefix string) Option {
	return func(c Config) {
		c[KeyRemovedPrefix] = prefix
	}
}

// WithDelimiter sets the separator the snake case strategy turns into
// underscores.
func WithDelimiter(delim string) Option {
	return func(c Config) {
		c[KeyDelimiter] = delim
	}
}

// WithDelimiterPattern is like WithDelimiter but matches a regular
// expression.
//
//   WithDelimiterPattern(regexp.MustCompile(`[./]`))
func WithDelimiterPattern(re *regexp.Regexp) Option {
	return func(c Config) {
		c[KeyDelimiter] = re
	}
}

// WithOverwrite replaces values that are already set in the scope.
func WithOverwrite(overwrite bool) Option {
	return func(c Config) {
		c[KeyOverwrite] = overwrite
	}
}

// WithScope writes values to s instead of the process environment.
func WithScope(s Scope) Option {
	return func(c Config) {
		c[KeyScope] = s
	}
}

// WithLogger sets the logger. Parameter values are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(c Config) {
		c[KeyLogger] = l
	}
}
