package main

import (
	"errors"
	"os/exec"

	"github.com/akupila/ssmenv"
	"github.com/spf13/cobra"
)

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Run a command with parameters in its environment",
		Example: `  ssmenv exec --path /myapp/prod -- ./server
  ssmenv exec --begins-with myapp.prod. --naming snakecase --delimiter . -- env`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() // nolint: errcheck

			ctx := cmd.Context()
			cfg := a.loaderConfig(log)
			cfg[ssmenv.KeyScope] = ssmenv.EnvScope{}
			l, err := ssmenv.NewLoader(ctx, cfg)
			if err != nil {
				return err
			}
			if err := l.Load(ctx); err != nil {
				return err
			}

			// The child inherits the environment the loader wrote to.
			c := exec.CommandContext(ctx, args[0], args[1:]...)
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()
			err = c.Run()
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &exitCodeError{code: exitErr.ExitCode()}
			}
			return err
		},
	}
}
