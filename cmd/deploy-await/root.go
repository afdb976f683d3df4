package main

import (
	"github.com/spf13/cobra"

	"github.com/shini4i/deploy-await/pkg/client"
)

// Overridden in tests.
var (
	runAwait         = client.Run
	runRegisterCheck = client.RunRegisterCheck
)

func newRootCommand() *cobra.Command {
	var options client.AwaitOptions

	rootCmd := &cobra.Command{
		Use:           "deploy-await",
		Short:         "Wait for the Vercel deployment of the current commit to become ready",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAwait(cmd.Context(), options)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&options.ProjectName, "project-name", "", "Vercel project name")
	flags.StringVar(&options.ProjectId, "project-id", "", "Vercel project id")
	flags.StringVar(&options.OutputName, "output-name", "", "Name of the step output receiving the deployment URL")
	flags.IntVar(&options.Timeout, "timeout", client.DefaultTimeoutSeconds, "Maximum time to wait in seconds")
	rootCmd.MarkFlagsOneRequired("project-name", "project-id")
	_ = rootCmd.MarkFlagRequired("output-name")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "register-check",
		Short: "Register a deployment check for the current commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegisterCheck(cmd.Context())
		},
	})

	return rootCmd
}
