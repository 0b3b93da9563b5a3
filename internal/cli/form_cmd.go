package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fluidguard/fluidguard/internal/cli/formatter"
	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/spf13/cobra"
)

func newFormCmd(app *App) *cobra.Command {
	var pf paramFlags

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Open the interactive parameter form",
		Long: "Open the parameter form, evaluate on submit and show the prediction.\n" +
			"Parameter flags and --file pre-fill the form.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParameters(cmd.Flags(), &pf, app.Config.ParamsFile)
			if err != nil {
				return err
			}
			return runSession(cmd, app, params)
		},
	}

	pf.register(cmd.Flags())
	return cmd
}

// runSession runs the form/result loop until the user quits. The last
// successful prediction is printed again once the alt screen is gone.
func runSession(cmd *cobra.Command, app *App, params domain.PipelineParameters) error {
	m := newSessionModel(cmd.Context(), app, params)
	prog := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("running form: %w", err)
	}

	if sm, ok := final.(*sessionModel); ok && sm.resp != nil && sm.err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPrediction(sm.resp))
	}
	return nil
}
