package cli

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fittrack/go-fitness-client/measurements"
	"github.com/fittrack/go-fitness-client/storage"
)

func newBMICmd() *cobra.Command {
	var (
		weight float64
		height float64
		unit   string
	)

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Calculate your body mass index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := measurements.CalculateBMI(weight, height, measurements.UnitSystem(unit))
			if err != nil {
				return err
			}

			cmd.Printf("BMI: %.1f (%s)\n%s\n\n", result.BMI, result.Category, result.HealthStatus)
			for _, rec := range result.Recommendations {
				cmd.Printf("  - %s\n", rec)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight (kg for metric, lbs for imperial)")
	cmd.Flags().Float64Var(&height, "height", 0, "height (cm for metric, inches for imperial)")
	cmd.Flags().StringVar(&unit, "unit", string(measurements.UnitMetric), "unit system (metric, imperial)")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func newThemeCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the UI theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := (*a).store

			if len(args) == 0 {
				theme, ok := storage.Get[string](store, storage.KeyTheme)
				if !ok {
					theme = "light"
				}
				cmd.Println(theme)
				return nil
			}

			theme := args[0]
			if theme != "light" && theme != "dark" {
				return errors.Errorf("unknown theme %q, expected light or dark", theme)
			}
			store.Set(storage.KeyTheme, theme)
			return nil
		},
	}
	return cmd
}

func newUploadCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a progress photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open file")
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return errors.Wrap(err, "stat file")
			}

			uploaded, err := app.uploads.Upload(cmd.Context(), filepath.Base(args[0]), info.Size(), f)
			if err != nil {
				return err
			}
			cmd.Printf("Uploaded %s (%s)\n%s\n", uploaded.FileName, uploaded.ID, uploaded.FileURL)
			return nil
		},
	}
	return cmd
}

func newHealthCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := (*a).health.Check(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("backend: %s\n", status.Status)
			for name, component := range status.Components {
				cmd.Printf("  %-12s %s\n", name, component.Status)
			}
			if !status.Up() {
				return errors.New("backend is not healthy")
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, _ []string) {
			banner()
			cmd.Printf("fittrack %s\n", Version)
		},
	}
}
