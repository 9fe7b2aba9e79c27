package main

import (
	"fmt"
	"strings"

	"github.com/akupila/ssmenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "SSMENV"

// app holds what every subcommand shares: the bound configuration and any
// options applied on top of it.
type app struct {
	v     *viper.Viper
	extra []ssmenv.Option
}

func newRootCmd(extra ...ssmenv.Option) *cobra.Command {
	a := &app{v: viper.New(), extra: extra}

	root := &cobra.Command{
		Use:   "ssmenv",
		Short: "Load AWS SSM Parameter Store values as environment variables",
		Long: `ssmenv reads parameters from AWS SSM Parameter Store, either every
parameter under a path or every parameter whose name begins with a prefix, and
turns each one into an environment variable.

Every flag can also be set with an SSMENV_ environment variable
(SSMENV_BEGINS_WITH for --begins-with) or in the file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.readConfigFile()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML file with default flag values")
	flags.String("path", "", "Load every parameter under this path")
	flags.Bool("recursive", false, "Include parameters below sub paths of --path")
	flags.StringSlice("begins-with", nil, "Load every parameter whose name starts with one of these prefixes")
	flags.Int("fetch-size", 0, "Parameters per request (default and maximum depend on the fetch mode)")
	flags.Bool("decryption", true, "Decrypt SecureString parameters")
	flags.String("naming", string(ssmenv.NamingBasename), "How names become keys: basename or snakecase")
	flags.String("removed-prefix", "", "Prefix removed from names by snakecase naming (default --begins-with or --path)")
	flags.String("delimiter", "", "Separator turned into underscores by snakecase naming (default /)")
	flags.Bool("overwrite", false, "Replace values that are already set")
	flags.String("region", "", "AWS region")
	flags.String("profile", "", "AWS shared config profile")
	flags.String("endpoint", "", "SSM endpoint URL")
	flags.BoolP("verbose", "v", false, "Log what is loaded (values are never logged)")

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	flags.VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(configKey(f.Name), f)
	})

	root.AddCommand(newExecCmd(a))
	root.AddCommand(newExportCmd(a))
	return root
}

// configKey maps a flag name to its viper key, which is also the
// ssmenv.Config key and the environment variable suffix.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func (a *app) readConfigFile() error {
	filename := a.v.GetString("config")
	if filename == "" {
		return nil
	}
	a.v.SetConfigFile(filename)
	a.v.SetConfigType("yaml")
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", filename, err)
	}
	return nil
}

func (a *app) newLogger() (*zap.Logger, error) {
	if !a.v.GetBool("verbose") {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// loaderConfig turns the bound flags into a loader configuration. Unset
// values are left out so the library defaults apply.
func (a *app) loaderConfig(log *zap.Logger) ssmenv.Config {
	cfg := ssmenv.Config{
		ssmenv.KeyRecursive:  a.v.GetBool(ssmenv.KeyRecursive),
		ssmenv.KeyDecryption: a.v.GetBool(ssmenv.KeyDecryption),
		ssmenv.KeyOverwrite:  a.v.GetBool(ssmenv.KeyOverwrite),
		ssmenv.KeyNaming:     a.v.GetString(ssmenv.KeyNaming),
		ssmenv.KeyLogger:     log,
	}
	for _, key := range []string{
		ssmenv.KeyPath,
		ssmenv.KeyRemovedPrefix,
		ssmenv.KeyDelimiter,
		ssmenv.KeyRegion,
		ssmenv.KeyProfile,
		ssmenv.KeyEndpoint,
	} {
		if s := a.v.GetString(key); s != "" {
			cfg[key] = s
		}
	}
	if prefixes := a.stringList(ssmenv.KeyBeginsWith); len(prefixes) > 0 {
		cfg[ssmenv.KeyBeginsWith] = prefixes
	}
	if n := a.v.GetInt(ssmenv.KeyFetchSize); n > 0 {
		cfg[ssmenv.KeyFetchSize] = n
	}
	for _, opt := range a.extra {
		opt(cfg)
	}
	return cfg
}

// stringList reads a list option. Strings, as they come from the environment,
// are split on commas like the flag values.
func (a *app) stringList(key string) []string {
	s, ok := a.v.Get(key).(string)
	if !ok {
		return a.v.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
