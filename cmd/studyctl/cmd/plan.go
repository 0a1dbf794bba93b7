package cmd

import (
	"github.com/spf13/cobra"
)

func PlanCmd() *cobra.Command {
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Work with study plans",
	}

	var userID, goalID string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new plan for a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.PlanService.GeneratePlan(cmd.Context(), userID, goalID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	generate.Flags().StringVar(&userID, "user", "", "owning user id")
	generate.Flags().StringVar(&goalID, "goal", "", "goal id")
	requireFlags(generate, "user", "goal")

	plan.AddCommand(generate)
	return plan
}

func DayCmd() *cobra.Command {
	day := &cobra.Command{
		Use:   "day",
		Short: "Work with daily content",
	}

	var userID, planID string
	var dayNumber int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate the lesson for one day of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			contents, err := a.PlanService.GenerateDailyContent(cmd.Context(), userID, planID, dayNumber)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), contents)
		},
	}
	generate.Flags().StringVar(&userID, "user", "", "owning user id")
	generate.Flags().StringVar(&planID, "plan", "", "plan id")
	generate.Flags().IntVar(&dayNumber, "day", 0, "day number (1-based)")
	requireFlags(generate, "user", "plan", "day")

	day.AddCommand(generate)
	return day
}

func ProgressCmd() *cobra.Command {
	var userID, planID string
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Print completion progress for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.PlanService.Progress(userID, planID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	progress.Flags().StringVar(&userID, "user", "", "owning user id")
	progress.Flags().StringVar(&planID, "plan", "", "plan id")
	requireFlags(progress, "user", "plan")
	return progress
}
