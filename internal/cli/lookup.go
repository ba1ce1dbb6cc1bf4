package cli

import (
	"fmt"
	"strings"

	"teachersday/internal/gallery"
	"teachersday/internal/photo"
	"teachersday/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type lookupFailedError struct {
	teacher string
	status  string
}

func (e lookupFailedError) Error() string {
	return fmt.Sprintf("no photo shown for %s: %s", e.teacher, e.status)
}

func newTeachersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "teachers",
		Short: "List the teachers in the dropdown and their photo identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := app.gallery(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": g.Roster().Teachers(),
			})
		},
	}
}

func newResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <teacher>",
		Short: "Show which photo a teacher name resolves to",
		Long: strings.TrimSpace(`
Resolve a display name (or a raw file identifier) the same way the page does:
exact file name, then .jpg/.jpeg/.png/.webp, then a case- and
separator-insensitive match. Exits non-zero when no photo would be shown.
`),
		Example: `teachersday resolve "Chhaya Mam"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := app.gallery(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := g.Show(args[0])
			if err := writeOut(cmd, app, map[string]any{"data": res}); err != nil {
				return writeErr(cmd, err)
			}
			if !res.OK() {
				return writeErr(cmd, lookupFailedError{teacher: res.Teacher, status: string(res.Status)})
			}
			return nil
		},
	}
}

func newFilesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the files currently in the photo folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := app.gallery(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			files, err := g.Files()
			if err != nil {
				return writeErr(cmd, err)
			}
			if files == nil {
				files = []string{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"dir": g.Dir(), "files": files},
			})
		},
	}
}

func newPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a teacher in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := app.gallery(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Log lines on stderr would tear the alt screen.
			return tui.Run(gallery.New(g.Roster(), g.Dir(), zap.NewNop()))
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "add <teacher> <image-file>",
		Short: "Copy a photo into the folder under the teacher's file name",
		Long: strings.TrimSpace(`
Copy an image into the photo folder, named after the teacher's identifier so
the page finds it by extension probing. The image must decode as jpg, png or
webp.
`),
		Example: `teachersday add "Vikas sir" ~/Downloads/IMG_0042.jpg`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, log, err := app.gallery(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := g.Roster().Identifier(args[0])
			m, err := photo.Import(args[1], g.Dir(), id, force)
			if err != nil {
				return writeErr(cmd, err)
			}
			log.Info("photo added", zap.String("teacher", args[0]), zap.String("file", m.Name))
			return writeOut(cmd, app, map[string]any{"data": g.Show(args[0])})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing file with the same name")
	return cmd
}
