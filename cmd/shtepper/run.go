package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mgree/smoosh/internal/engine"
)

func newRunCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Step a shell script with the engine and render the trace",
		Long: `Run SCRIPT through the stepping shell configured as engine.executable
and render the trace it prints. If the engine fails, its stderr is shown as
an error record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			script, err := os.ReadFile(args[0])
			if err != nil {
				return &CLIError{Type: "input", Message: "could not read script", Details: err.Error()}
			}

			r := &engine.Runner{
				Executable: a.cfg.Engine.Executable,
				Timeout:    a.cfg.Engine.Timeout,
				Workdir:    a.cfg.Engine.Workdir,
				Keep:       a.cfg.Engine.Keep,
				Logger:     a.logger,
			}
			res, err := r.Run(cmd.Context(), engine.Invocation{
				Script: string(script),
				Env:    a.cfg.Engine.Env,
				Users:  a.cfg.Engine.Users,
			})
			if err != nil {
				return &CLIError{
					Type:    "engine",
					Message: "could not run the engine",
					Details: err.Error(),
					Hint:    "Set engine.executable in the config file or SHTEPPER_ENGINE",
				}
			}
			if res.ExitCode != 0 {
				a.logger.Info("engine failed", "exit", res.ExitCode)
			}

			data := res.Document()
			if raw {
				_, err := a.stdout.Write(append(data, '\n'))
				return err
			}
			doc, err := a.decode("engine output", data)
			if err != nil {
				return err
			}
			return a.render(a.stdout, doc)
		},
	}

	cmd.Flags().BoolVar(&raw, "json", false, "Print the trace document instead of rendering it")
	return cmd
}
