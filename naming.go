package ssmenv

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// A NamingStrategy derives the key a parameter is stored under.
type NamingStrategy interface {
	ParseName(p Parameter) string
}

// NamingFunc adapts a function to a NamingStrategy.
type NamingFunc func(p Parameter) string

// ParseName calls fn. It panics with ErrNotImplemented if fn is nil.
func (fn NamingFunc) ParseName(p Parameter) string {
	if fn == nil {
		panic(ErrNotImplemented)
	}
	return fn(p)
}

// Basename uses the last segment of the parameter name as key:
// /myapp/prod/DB_PASSWORD is stored as DB_PASSWORD.
type Basename struct{}

// ParseName returns the last /-separated element of the name.
func (Basename) ParseName(p Parameter) string {
	return path.Base(p.Name)
}

// SnakeCase removes a prefix from the parameter name, replaces delimiters
// with underscores and upper cases the result. With the prefix /myapp/prod,
// /myapp/prod/db/password is stored as DB_PASSWORD.
//
// A delimiter directly after the removed prefix is dropped with it. A prefix
// that does not match leaves the name untouched. Keys are not sanitized
// further.
type SnakeCase struct {
	prefixes  []string
	delimiter *regexp.Regexp
}

// NewSnakeCase creates a SnakeCase strategy. The removed prefix is taken from
// removed_prefix, then begins_with, then path; a trailing / is dropped. The
// delimiter is a string or *regexp.Regexp from the delimiter key and
// defaults to /.
func NewSnakeCase(cfg Config) (*SnakeCase, error) {
	delim, err := parseDelimiter(cfg)
	if err != nil {
		return nil, err
	}
	prefixes, err := removedPrefixes(cfg)
	if err != nil {
		return nil, err
	}
	s := &SnakeCase{prefixes: prefixes, delimiter: delim}
	cfg.logger().Named("naming").Debug("Snake case naming",
		zap.Strings("removed_prefix", prefixes),
		zap.Stringer("delimiter", delim),
	)
	return s, nil
}

// ParseName derives the key for p.
func (s *SnakeCase) ParseName(p Parameter) string {
	name := p.Name
	for _, prefix := range s.prefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			// The delimiter after the prefix goes with it.
			if loc := s.delimiter.FindStringIndex(name); loc != nil && loc[0] == 0 {
				name = name[loc[1]:]
			}
			break
		}
	}
	return strings.ToUpper(s.delimiter.ReplaceAllLiteralString(name, "_"))
}

func parseDelimiter(cfg Config) (*regexp.Regexp, error) {
	raw, ok := cfg.value(KeyDelimiter)
	if !ok {
		return regexp.MustCompile("/"), nil
	}
	switch v := raw.(type) {
	case *regexp.Regexp:
		return v, nil
	case string:
		if v == "" {
			return nil, argumentError(KeyDelimiter, "must not be empty")
		}
		return regexp.MustCompile(regexp.QuoteMeta(v)), nil
	}
	return nil, argumentError(KeyDelimiter, "want string or *regexp.Regexp, got %T", raw)
}

// removedPrefixes returns the prefixes to strip, longest first.
func removedPrefixes(cfg Config) ([]string, error) {
	var prefixes []string
	switch {
	case cfg[KeyRemovedPrefix] != nil:
		prefixes = []string{cfg.str(KeyRemovedPrefix)}
	case cfg[KeyBeginsWith] != nil:
		p, err := parseStrings(cfg[KeyBeginsWith])
		if err != nil {
			return nil, argumentError(KeyBeginsWith, "want string or list of strings, got %T", cfg[KeyBeginsWith])
		}
		prefixes = append(prefixes, p...)
	case cfg[KeyPath] != nil:
		prefixes = []string{cfg.str(KeyPath)}
	}
	for i, p := range prefixes {
		prefixes[i] = strings.TrimSuffix(p, "/")
	}
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})
	return prefixes, nil
}

// NamingMode names a built in naming strategy.
type NamingMode string

// Naming modes.
const (
	NamingBasename  NamingMode = "basename"
	NamingSnakeCase NamingMode = "snakecase"
)

// NewNamingStrategy builds the strategy selected by the naming key: a
// NamingMode (or its string form), a NamingStrategy or a
// func(Parameter) string. The default is Basename.
func NewNamingStrategy(cfg Config) (NamingStrategy, error) {
	raw, ok := cfg.value(KeyNaming)
	if !ok {
		return Basename{}, nil
	}
	switch v := raw.(type) {
	case NamingStrategy:
		return v, nil
	case func(Parameter) string:
		return NamingFunc(v), nil
	case NamingMode:
		return newNamingByMode(cfg, v)
	case string:
		return newNamingByMode(cfg, NamingMode(v))
	}
	return nil, argumentError(KeyNaming, "want %q, %q or a NamingStrategy, got %T", NamingBasename, NamingSnakeCase, raw)
}

func newNamingByMode(cfg Config, mode NamingMode) (NamingStrategy, error) {
	switch mode {
	case NamingBasename:
		return Basename{}, nil
	case NamingSnakeCase:
		s, err := NewSnakeCase(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, argumentError(KeyNaming, "unknown naming mode %q", mode)
}
