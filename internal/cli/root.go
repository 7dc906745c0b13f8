package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"iotdash/internal/client"
	"iotdash/internal/service/assettree"
)

// NewRootCmd creates the top-level "assettree" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configFile string
	var verbose bool

	root := &cobra.Command{
		Use:           "assettree",
		Short:         "Browse and reorganise the plant asset hierarchy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			if app.Logger == nil {
				app.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			}

			if app.Backend != nil {
				return nil
			}
			settings, err := LoadSettings(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			app.Logger.Debug("using inventory API", "url", settings.APIURL, "timeout", settings.Timeout)
			app.Backend = client.NewInventoryClient(settings.APIURL, settings.Token, settings.Timeout)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a settings file (yaml, json or toml)")
	root.PersistentFlags().String("api-url", "", "Inventory API root, e.g. http://localhost:8080/api")
	root.PersistentFlags().String("token", "", "Bearer token for the inventory API")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and rebuilds to stderr")

	root.AddCommand(
		newTreeCmd(app),
		newCreateCmd(app),
		newMoveCmd(app),
		newDeleteCmd(app),
	)

	return root
}

// newView builds a view and loads the first snapshot
func newView(cmd *cobra.Command, app *App) (*assettree.View, *assettree.Builder, error) {
	builder := assettree.NewBuilder(app.Backend, app.Logger)
	view := assettree.NewView(builder, app.Logger)
	if err := view.Reload(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return view, builder, nil
}
