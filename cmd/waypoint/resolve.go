package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <link>",
	Short: "Resolve a deep link or universal link into an intent",
	Long: `Resolves a custom-scheme deep link, or an https universal link, with the
configured scheme and domain and prints the resulting intent as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, closeApp, err := cli.NewApp(ctx, cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeApp()

		link := args[0]
		var in domain.Intent
		if strings.HasPrefix(link, "https://") {
			in, err = app.Continue(ctx, domain.Activation{Type: domain.ActivationBrowsingWeb, URL: link})
		} else {
			in, err = app.Open(ctx, link)
		}

		style := cli.NewStyler(cmd.OutOrStdout())
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", style.Reject("rejected"), err)
			return err
		}
		data, err := json.Marshal(domain.Envelope(in))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Accept("accepted"), data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
