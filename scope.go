package ssmenv

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// A Scope is a mutable string keyed store parameters are written to.
type Scope interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// ScopeEnvironment selects the process environment in the scope key.
const ScopeEnvironment = "environment"

// EnvScope is the process environment.
type EnvScope struct{}

// Lookup reads an environment variable.
func (EnvScope) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set sets an environment variable.
func (EnvScope) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// MapScope stores values in memory.
type MapScope map[string]string

// Lookup returns the value at key.
func (m MapScope) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value at key.
func (m MapScope) Set(key, value string) error {
	m[key] = value
	return nil
}

// DotenvScope is a .env file. Values are read when the scope is created and
// written back by Save.
type DotenvScope struct {
	filename string
	values   MapScope
}

// NewDotenvScope reads filename. A missing file is an empty scope.
func NewDotenvScope(filename string) (*DotenvScope, error) {
	values, err := godotenv.Read(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", filename, err)
		}
		values = map[string]string{}
	}
	return &DotenvScope{filename: filename, values: values}, nil
}

// Lookup returns the value at key.
func (s *DotenvScope) Lookup(key string) (string, bool) {
	return s.values.Lookup(key)
}

// Set stores value at key. It is not written until Save is called.
func (s *DotenvScope) Set(key, value string) error {
	return s.values.Set(key, value)
}

// Values returns the current contents of the scope.
func (s *DotenvScope) Values() map[string]string {
	return s.values
}

// Save writes the scope to its file.
func (s *DotenvScope) Save() error {
	if err := godotenv.Write(s.values, s.filename); err != nil {
		return fmt.Errorf("write %s: %w", s.filename, err)
	}
	return nil
}

// NewScope resolves the scope key: nil or "environment" is the process
// environment, a Scope is used as is and a map[string]string is wrapped in a
// MapScope.
func NewScope(cfg Config) (Scope, error) {
	raw, ok := cfg.value(KeyScope)
	if !ok {
		return EnvScope{}, nil
	}
	switch v := raw.(type) {
	case Scope:
		return v, nil
	case map[string]string:
		return MapScope(v), nil
	case string:
		if v == ScopeEnvironment {
			return EnvScope{}, nil
		}
		return nil, argumentError(KeyScope, "unknown scope %q", v)
	}
	return nil, argumentError(KeyScope, "want %q or a Scope, got %T", ScopeEnvironment, raw)
}
