package cli

import (
	"fmt"
	"strings"

	"teachersday/internal/config"
	"teachersday/internal/format"
	"teachersday/internal/gallery"
	"teachersday/internal/logging"
	"teachersday/internal/roster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ImagesDir  string
	RosterFile string
	LogLevel   string
	LogFormat  string
	Format     string
	PrettyJSON bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:           "teachersday",
		Short:         "Teacher's Day photo page (web + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Serve the page on the default address
  teachersday

  # Photos live somewhere else
  teachersday --images ~/Pictures/teachers serve --addr :8080

  # Which file would be shown for a teacher?
  teachersday resolve "Jay sir"

  # Terminal picker
  teachersday pick
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => serve the page.
			return runServeWith(cmd, app, app.cfg.Addr, app.cfg.Open, "")
		},
	}

	cmd.PersistentFlags().StringVar(&app.ImagesDir, "images", app.cfg.ImagesDir, "Photo folder (created if missing) [$"+config.EnvImagesDir+"]")
	cmd.PersistentFlags().StringVar(&app.RosterFile, "roster", app.cfg.RosterFile, "Roster YAML file (default: built-in teachers) [$"+config.EnvRoster+"]")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", app.cfg.LogLevel, "Log level (debug|info|warn|error) [$"+config.EnvLogLevel+"]")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", app.cfg.LogFormat, "Log format (console|json) [$"+config.EnvLogFormat+"]")
	cmd.PersistentFlags().StringVar(&app.Format, "format", app.cfg.Format, "Output format (json|edn) [$"+config.EnvFormat+"]")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newTeachersCmd(app))
	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newFilesCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newPickCmd(app))

	return cmd
}

func (app *App) logger(cmd *cobra.Command) (*zap.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), app.LogLevel, app.LogFormat)
}

func (app *App) gallery(cmd *cobra.Command) (*gallery.Gallery, *zap.Logger, error) {
	log, err := app.logger(cmd)
	if err != nil {
		return nil, nil, err
	}
	r, err := roster.Load(app.RosterFile)
	if err != nil {
		return nil, nil, err
	}
	dir := strings.TrimSpace(app.ImagesDir)
	if dir == "" {
		dir = config.Defaults().ImagesDir
	}
	return gallery.New(r, dir, log.Named("gallery")), log, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
