package cli

import (
	"github.com/fluidguard/fluidguard/internal/config"
	"github.com/fluidguard/fluidguard/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Evaluate service.EvaluateService
	Config   config.Config

	// IsInteractive reports whether stdin is a terminal. When nil, the root
	// command never starts the interactive session on its own.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "fluidguard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fluidguard",
		Short: "Pipeline corrosion and replacement risk estimator",
		Long: "Fluid Guard estimates when a fluid-carrying pipeline will start to corrode\n" +
			"and when it should be replaced, and checks the maintenance schedule.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				params, err := resolveParameters(cmd.Flags(), &paramFlags{}, app.Config.ParamsFile)
				if err != nil {
					return err
				}
				return runSession(cmd, app, params)
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEvaluateCmd(app),
		newFormCmd(app),
		newWatchCmd(app),
	)

	return root
}
