package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fluidguard/fluidguard/internal/cli/formatter"
	"github.com/fluidguard/fluidguard/internal/config"
	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/fluidguard/fluidguard/internal/paramfile"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var pf paramFlags
	var opts evalOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate a parameter file every time it is saved",
		Long: "Watch a parameter file and print a fresh prediction each time it changes.\n" +
			"Explicit parameter flags override values read from the file. Stop with Ctrl+C.",
		Example: "  fluidguard watch --file pipeline.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := domain.FirstNonEmpty(pf.file, app.Config.ParamsFile)
			if path == "" {
				return fmt.Errorf("--file is required (or set FLUIDGUARD_PARAMS_FILE)")
			}
			format, err := opts.outputFormat(app.Config)
			if err != nil {
				return err
			}
			// Policy and --today are fixed for the whole watch; only the
			// parameters change between saves.
			base, err := opts.request(app.Config, domain.DefaultParameters())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			render := func(f *paramfile.ParamsFile) {
				if format == config.OutputText {
					fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), path)))
				}

				params, err := f.Apply(domain.DefaultParameters())
				if err == nil {
					params, err = pf.overlay(cmd.Flags()).Apply(params)
				}
				if err != nil {
					_ = writeEvaluation(out, format, nil, err)
					return
				}

				req := base
				req.Params = params
				resp, evalErr := app.Evaluate.Evaluate(ctx, req)
				if err := writeEvaluation(out, format, resp, evalErr); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}

			initial, err := paramfile.Load(path)
			if err != nil {
				return err
			}
			render(initial)

			return paramfile.Watch(ctx, path, render, func(err error) {
				_ = writeEvaluation(out, format, nil, err)
			})
		},
	}

	pf.register(cmd.Flags())
	opts.register(cmd)
	return cmd
}
