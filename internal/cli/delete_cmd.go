package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iotdash/internal/cli/formatter"
	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/service/assettree"
)

// errNotConfirmed is returned when a delete cannot be confirmed
var errNotConfirmed = errors.New("delete needs confirmation: pass --yes when not running in a terminal")

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a location or area with everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, builder, err := newView(cmd, app)
			if err != nil {
				return err
			}

			node := view.Find(args[0])
			if node == nil {
				return &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", args[0])}
			}
			if !node.Kind.Draggable() {
				return domain.NewValidationError("only locations and areas can be deleted here")
			}

			out := cmd.OutOrStdout()
			if !yes {
				if !app.interactive() {
					return errNotConfirmed
				}
				descendants := len(models.IDs(node.Children))
				title := fmt.Sprintf("Delete %s %q and %s below it?", node.Kind, node.Name,
					formatter.Plural(descendants, "node", "nodes"))
				ok, err := app.confirm(title)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			mutator := assettree.NewMutator(app.Backend, builder, app.Logger)
			roots, err := mutator.Delete(cmd.Context(), node.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Deleted %s %q\n", node.Kind, node.Name)
			fmt.Fprintln(out, summary(roots))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
