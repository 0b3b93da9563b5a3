package cli

import (
	"fmt"
	"io"

	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/cli/formatter"
	"github.com/fluidguard/fluidguard/internal/config"
	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/spf13/cobra"
)

// evalOptions are the flags shared by the non-interactive commands.
type evalOptions struct {
	output string
	policy string
	today  string
}

func (o *evalOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output format: text or json (default from FLUIDGUARD_OUTPUT, else text)")
	cmd.Flags().StringVar(&o.policy, "input-policy", "", "out-of-range handling: reject or clamp (default from FLUIDGUARD_INPUT_POLICY, else reject)")
	cmd.Flags().StringVar(&o.today, "today", "", "reference date for install-date checks (YYYY-MM-DD, default today)")
}

// outputFormat resolves --output against the configured default.
func (o *evalOptions) outputFormat(cfg config.Config) (config.OutputFormat, error) {
	if o.output == "" {
		return cfg.Output, nil
	}
	f, ok := config.ParseOutputFormat(o.output)
	if !ok {
		return "", fmt.Errorf("invalid --output %q (want text or json)", o.output)
	}
	return f, nil
}

// request builds an EvaluateRequest honoring --input-policy and --today.
func (o *evalOptions) request(cfg config.Config, params domain.PipelineParameters) (app.EvaluateRequest, error) {
	req := app.NewEvaluateRequest(params)
	req.Policy = cfg.InputPolicy

	if o.policy != "" {
		p, ok := domain.ParseInputPolicy(o.policy)
		if !ok {
			return req, fmt.Errorf("invalid --input-policy %q (want reject or clamp)", o.policy)
		}
		req.Policy = p
	}
	if o.today != "" {
		t, err := domain.ParseDate(o.today)
		if err != nil {
			return req, fmt.Errorf("invalid --today: %w", err)
		}
		req.Now = &t
	}
	return req, nil
}

func newEvaluateCmd(app *App) *cobra.Command {
	var pf paramFlags
	var opts evalOptions

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate corrosion risk for one parameter set",
		Long: "Evaluate a parameter set given as flags and/or a parameter file.\n" +
			"Explicit flags override values read from the file.",
		Example: "  fluidguard evaluate --material copper --density 1000 --temperature 20 --humidity 50\n" +
			"  fluidguard evaluate --file pipeline.yaml --output json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.outputFormat(app.Config)
			if err != nil {
				return err
			}
			params, err := resolveParameters(cmd.Flags(), &pf, app.Config.ParamsFile)
			if err != nil {
				return err
			}
			req, err := opts.request(app.Config, params)
			if err != nil {
				return err
			}

			resp, evalErr := app.Evaluate.Evaluate(cmd.Context(), req)
			if err := writeEvaluation(cmd.OutOrStdout(), format, resp, evalErr); err != nil {
				return err
			}
			return evalErr
		},
	}

	pf.register(cmd.Flags())
	opts.register(cmd)
	return cmd
}

// writeEvaluation renders either the prediction or the evaluation error.
func writeEvaluation(w io.Writer, format config.OutputFormat, resp *app.EvaluateResponse, evalErr error) error {
	if format == config.OutputJSON {
		var out string
		var err error
		if evalErr != nil {
			out, err = formatter.FormatEvaluateErrorJSON(evalErr)
		} else {
			out, err = formatter.FormatPredictionJSON(resp)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}

	if evalErr != nil {
		fmt.Fprintln(w, formatter.FormatEvaluateError(evalErr))
		return nil
	}
	fmt.Fprintln(w, formatter.FormatPrediction(resp))
	return nil
}
