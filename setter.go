package ssmenv

// ParameterSetter writes values into a Scope. Unless overwrite is set, keys
// that already hold a non-empty value are left alone.
type ParameterSetter struct {
	overwrite bool
	scope     Scope
}

// NewParameterSetter creates a setter from the overwrite and scope keys.
// overwrite defaults to false and scope to the process environment.
func NewParameterSetter(cfg Config) (*ParameterSetter, error) {
	scope, err := NewScope(cfg)
	if err != nil {
		return nil, err
	}
	return &ParameterSetter{
		overwrite: parseBoolOption(cfg[KeyOverwrite], false),
		scope:     scope,
	}, nil
}

// Save sets key to value. It reports whether the scope was written.
func (s *ParameterSetter) Save(key, value string) (bool, error) {
	if !s.overwrite {
		if existing, ok := s.scope.Lookup(key); ok && existing != "" {
			return false, nil
		}
	}
	if err := s.scope.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

// Scope returns the scope values are written to.
func (s *ParameterSetter) Scope() Scope {
	return s.scope
}
