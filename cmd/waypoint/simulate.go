package main

import (
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <script.yaml>",
	Short: "Replay host events against headless sections",
	Long: `Replays a script of links, lifecycle events and navigations against the
app with one headless window per section, then prints every section state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := cli.LoadScript(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, closeApp, err := cli.NewApp(ctx, cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeApp()

		return cli.NewSimulation(app, cmd.OutOrStdout()).Run(ctx, script)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
