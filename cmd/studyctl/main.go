package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/studytrail/cmd/studyctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "studyctl",
		Short:         "Operator tools for studytrail",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.PlanCmd())
	rootCmd.AddCommand(cmd.DayCmd())
	rootCmd.AddCommand(cmd.ProgressCmd())
	rootCmd.AddCommand(cmd.ConfigCmd())
	rootCmd.AddCommand(cmd.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
