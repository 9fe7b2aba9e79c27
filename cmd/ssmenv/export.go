package main

import (
	"fmt"
	"io"

	"github.com/akupila/ssmenv"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	formatDotenv = "dotenv"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print parameters as dotenv, JSON or YAML",
		Long: `export loads parameters and prints them. With --output the parameters are
merged into a .env file instead: keys already in the file are kept unless
--overwrite is set.`,
		Example: `  ssmenv export --path /myapp/prod --format json
  ssmenv export --path /myapp/prod --output .env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatDotenv, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if output != "" && format != formatDotenv {
				return fmt.Errorf("--output writes %s, cannot use --format %s", formatDotenv, format)
			}

			log, err := a.newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() // nolint: errcheck

			ctx := cmd.Context()
			cfg := a.loaderConfig(log)
			var file *ssmenv.DotenvScope
			if output != "" {
				if file, err = ssmenv.NewDotenvScope(output); err != nil {
					return err
				}
				cfg[ssmenv.KeyScope] = file
			} else {
				cfg[ssmenv.KeyScope] = ssmenv.MapScope{}
			}

			l, err := ssmenv.NewLoader(ctx, cfg)
			if err != nil {
				return err
			}
			if err := l.Load(ctx); err != nil {
				return err
			}

			if file != nil {
				return file.Save()
			}
			return render(cmd.OutOrStdout(), format, l.Scope().(ssmenv.MapScope))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatDotenv, "Output format: dotenv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Merge into this .env file instead of printing")
	return cmd
}

func render(w io.Writer, format string, values map[string]string) error {
	switch format {
	case formatDotenv:
		s, err := godotenv.Marshal(values)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case formatJSON:
		b, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
