// Package cli implements the fittrack command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fittrack/go-fitness-client/activities"
	"github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/auth"
	"github.com/fittrack/go-fitness-client/goals"
	"github.com/fittrack/go-fitness-client/health"
	"github.com/fittrack/go-fitness-client/internal/config"
	"github.com/fittrack/go-fitness-client/measurements"
	"github.com/fittrack/go-fitness-client/notify"
	"github.com/fittrack/go-fitness-client/recommendations"
	"github.com/fittrack/go-fitness-client/session"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/uploads"
	"github.com/fittrack/go-fitness-client/users"
)

// Version is stamped at build time.
var Version = "dev"

// app holds the wired services every command runs against.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	store   *storage.Store
	api     *api.Client
	session *session.Service

	auth            *auth.Client
	users           *users.Service
	activities      *activities.Client
	goals           *goals.Client
	measurements    *measurements.Client
	recommendations *recommendations.Client
	uploads         *uploads.Client
	health          *health.Client
}

func newApp(configFile, logLevel string) (*app, error) {
	cfg, err := config.New(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "[cli.newApp] config")
	}

	if logLevel == "" {
		logLevel = cfg.GetLogLevel()
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "[cli.newApp] log level %q", logLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	profileDir := cfg.GetProfileDir()
	if profileDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "[cli.newApp] resolve profile dir")
		}
		profileDir = filepath.Join(configDir, "fittrack", "profile")
	}

	store := storage.New(profileDir,
		storage.WithLogger(log),
		storage.WithPassphrase(cfg.GetStoragePassphrase()),
	)
	notifier := notify.NewConsoleNotifier(log)

	a := &app{cfg: cfg, log: log, store: store}

	a.api = api.NewClient(cfg.GetAPIBaseURL(),
		api.WithTimeout(cfg.GetAPITimeout()),
		api.WithLogger(log),
		api.WithNotifier(notifier),
		api.WithTokenSource(api.TokenSourceFunc(store.GetToken)),
		api.WithUnauthorizedHandler(func() {
			if a.session != nil {
				a.session.Logout()
			}
		}),
	)

	a.auth = auth.NewClient(a.api)

	watcher, err := storage.NewWatcher(store, log)
	if err != nil {
		// Cross-process sync is best effort; the session works without it.
		log.Warn().Err(err).Msg("storage watcher unavailable")
	}

	sessionOpts := []session.Option{
		session.WithLogger(log),
		session.WithNotifier(notifier),
		session.WithRefreshThreshold(cfg.GetRefreshThreshold()),
		session.WithCheckInterval(cfg.GetRefreshCheckInterval()),
	}
	if watcher != nil {
		sessionOpts = append(sessionOpts, session.WithChangeNotifier(watcher))
	}
	a.session, err = session.New(store, a.auth, sessionOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[cli.newApp] session")
	}

	a.users = users.NewService(a.api)
	a.activities = activities.NewClient(a.api)
	a.goals = goals.NewClient(a.api)
	a.measurements = measurements.NewClient(a.api)
	a.recommendations = recommendations.NewClient(a.api)
	a.uploads = uploads.NewClient(a.api)
	a.health = health.NewClient(a.api)
	return a, nil
}

func (a *app) close() {
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			a.log.Warn().Err(err).Msg("session close")
		}
	}
}

// requireAuth fails fast for commands that need a signed-in session.
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return errors.New("not signed in, run `fittrack login` first")
	}
	return nil
}

// Execute runs the fittrack command tree.
func Execute() error {
	var (
		configFile string
		logLevel   string
		a          *app
	)

	root := &cobra.Command{
		Use:           "fittrack",
		Short:         "Track workouts, goals and measurements from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(configFile, logLevel)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.close()
			}
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newLoginCmd(&a),
		newRegisterCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newRefreshCmd(&a),
		newTokenCmd(&a),
		newActivityCmd(&a),
		newGoalCmd(&a),
		newMeasurementCmd(&a),
		newRecommendCmd(&a),
		newAdminCmd(&a),
		newUploadCmd(&a),
		newBMICmd(),
		newThemeCmd(&a),
		newHealthCmd(&a),
		newVersionCmd(),
	)
	return root.Execute()
}

func banner() {
	figure.NewFigure("FitTrack", "cybermedium", true).Print()
	fmt.Println()
}
