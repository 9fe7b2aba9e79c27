package ssmenv

import (
	"context"

	"go.uber.org/zap"
)

// Loader streams parameters from a Fetcher through a NamingStrategy into a
// ParameterSetter.
type Loader struct {
	fetcher Fetcher
	naming  NamingStrategy
	setter  *ParameterSetter
	log     *zap.Logger
}

// NewLoader builds the fetcher, naming strategy and setter described by cfg.
// Configuration errors are returned here, before Parameter Store is called.
// Naming and scope are checked before the fetcher loads the AWS config.
func NewLoader(ctx context.Context, cfg Config) (*Loader, error) {
	naming, err := NewNamingStrategy(cfg)
	if err != nil {
		return nil, err
	}
	setter, err := NewParameterSetter(cfg)
	if err != nil {
		return nil, err
	}
	fetcher, err := NewFetcher(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Loader{
		fetcher: fetcher,
		naming:  naming,
		setter:  setter,
		log:     cfg.logger(),
	}, nil
}

// Load fetches every parameter and saves it in the scope. Errors from
// Parameter Store are returned as is; values saved before the error stay in
// the scope.
func (l *Loader) Load(ctx context.Context) error {
	var fetched, saved int
	err := l.fetcher.Each(ctx, func(p Parameter) error {
		fetched++
		key := l.naming.ParseName(p)
		ok, err := l.setter.Save(key, p.Value)
		if err != nil {
			return err
		}
		if ok {
			saved++
		}
		l.log.Debug("Parameter loaded",
			zap.String("name", p.Name),
			zap.String("key", key),
			zap.Bool("saved", ok),
		)
		return nil
	})
	if err != nil {
		return err
	}
	l.log.Info("Parameters loaded",
		zap.Int("fetched", fetched),
		zap.Int("saved", saved),
	)
	return nil
}

// Scope returns the scope the loader writes to.
func (l *Loader) Scope() Scope {
	return l.setter.Scope()
}

// Load reads parameters from Parameter Store into the process environment,
// or the scope set with WithScope. Values that are already set are kept.
//
//   err := ssmenv.Load(ctx, ssmenv.WithPath("/myapp/prod"))
func Load(ctx context.Context, options ...Option) error {
	return load(ctx, options)
}

// Overload is like Load but replaces values that are already set.
func Overload(ctx context.Context, options ...Option) error {
	return load(ctx, append(options[:len(options):len(options)], WithOverwrite(true)))
}

func load(ctx context.Context, options []Option) error {
	cfg := make(Config)
	for _, opt := range options {
		opt(cfg)
	}
	l, err := NewLoader(ctx, cfg)
	if err != nil {
		return err
	}
	return l.Load(ctx)
}
