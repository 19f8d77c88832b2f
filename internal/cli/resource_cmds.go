package cli

import (
	"github.com/spf13/cobra"

	"github.com/fittrack/go-fitness-client/activities"
	"github.com/fittrack/go-fitness-client/goals"
	"github.com/fittrack/go-fitness-client/measurements"
	"github.com/fittrack/go-fitness-client/recommendations"
)

func newActivityCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage logged activities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			list, err := app.activities.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, act := range list {
				cmd.Printf("%s  %-10s %4d min  %5d kcal  %s\n",
					act.ID, act.Type, act.Duration, act.CaloriesBurned, act.Date)
			}
			return nil
		},
	})

	var addReq activities.CreateRequest
	var activityType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a new activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			addReq.Type = activities.Type(activityType)
			created, err := app.activities.Create(cmd.Context(), addReq)
			if err != nil {
				return err
			}
			cmd.Printf("Logged %s (%s)\n", created.Type, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&activityType, "type", "", "activity type (RUNNING, CYCLING, ...)")
	add.Flags().IntVar(&addReq.Duration, "duration", 0, "duration in minutes")
	add.Flags().IntVar(&addReq.CaloriesBurned, "calories", 0, "calories burned")
	add.Flags().StringVar(&addReq.Date, "date", "", "activity date (YYYY-MM-DD)")
	add.Flags().StringVar(&addReq.Notes, "notes", "", "free-form notes")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			return app.activities.Delete(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show aggregate activity statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			stats, err := app.activities.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	})

	return cmd
}

func newGoalCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage fitness goals and milestones",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			list, err := app.goals.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range list {
				cmd.Printf("%s  %-14s %-10s %s\n", g.ID, g.Type, g.Status, g.Title)
			}
			return nil
		},
	})

	var goal goals.Goal
	var goalType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			goal.Type = goals.Type(goalType)
			created, err := app.goals.Create(cmd.Context(), goal)
			if err != nil {
				return err
			}
			cmd.Printf("Created goal %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&goal.Title, "title", "", "goal title")
	add.Flags().StringVar(&goalType, "type", string(goals.TypeCustom), "goal type (WEIGHT_LOSS, ENDURANCE, ...)")
	add.Flags().StringVar(&goal.Unit, "unit", "", "unit of the target value")
	add.Flags().StringVar(&goal.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			return app.goals.Delete(cmd.Context(), args[0])
		},
	})

	milestone := &cobra.Command{
		Use:   "milestone",
		Short: "Manage goal milestones",
	}

	var ms goals.Milestone
	msAdd := &cobra.Command{
		Use:   "add <goal-id>",
		Short: "Attach a milestone to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			created, err := app.goals.AddMilestone(cmd.Context(), args[0], ms)
			if err != nil {
				return err
			}
			cmd.Printf("Added milestone %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	msAdd.Flags().StringVar(&ms.Title, "title", "", "milestone title")
	msAdd.Flags().Float64Var(&ms.TargetValue, "target", 0, "target value")
	milestone.AddCommand(msAdd)

	milestone.AddCommand(&cobra.Command{
		Use:   "achieve <milestone-id>",
		Short: "Mark a milestone as achieved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			achieved, err := app.goals.AchieveMilestone(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Milestone %q achieved\n", achieved.Title)
			return nil
		},
	})
	cmd.AddCommand(milestone)

	return cmd
}

func newMeasurementCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measurement",
		Short: "Manage body measurements",
	}

	var startDate, endDate string
	list := &cobra.Command{
		Use:   "list",
		Short: "List your measurements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}

			var (
				items []measurements.Measurement
				err   error
			)
			if startDate != "" || endDate != "" {
				items, err = app.measurements.ListByDateRange(cmd.Context(), startDate, endDate)
			} else {
				items, err = app.measurements.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	list.Flags().StringVar(&startDate, "from", "", "start date (YYYY-MM-DD)")
	list.Flags().StringVar(&endDate, "to", "", "end date (YYYY-MM-DD)")
	cmd.AddCommand(list)

	var m measurements.Measurement
	var weight, height float64
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a measurement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			if weight > 0 {
				m.Weight = &weight
			}
			if height > 0 {
				m.Height = &height
			}
			created, err := app.measurements.Create(cmd.Context(), m)
			if err != nil {
				return err
			}
			cmd.Printf("Recorded measurement for %s (%s)\n", created.MeasurementDate, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&m.MeasurementDate, "date", "", "measurement date (YYYY-MM-DD)")
	add.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	add.Flags().Float64Var(&height, "height", 0, "height in cm")
	add.Flags().StringVar(&m.Notes, "notes", "", "free-form notes")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			return app.measurements.Delete(cmd.Context(), args[0])
		},
	})

	return cmd
}

func newRecommendCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Manage training recommendations",
	}

	var focus string
	generate := &cobra.Command{
		Use:   "generate <activity-id>",
		Short: "Generate a recommendation for an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			rec, err := app.recommendations.Generate(cmd.Context(), recommendations.GenerateRequest{
				ActivityID: args[0],
				FocusArea:  recommendations.FocusArea(focus),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
	generate.Flags().StringVar(&focus, "focus", "", "focus area (performance, safety, nutrition, recovery)")
	cmd.AddCommand(generate)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			user := app.session.CurrentUser()
			if user == nil {
				fetched, err := app.users.Profile(cmd.Context())
				if err != nil {
					return err
				}
				app.session.UpdateUser(*fetched)
				user = fetched
			}

			list, err := app.recommendations.ForUser(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}
			return app.recommendations.Delete(cmd.Context(), args[0])
		},
	})

	return cmd
}
