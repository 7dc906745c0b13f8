package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotdash/internal/domain"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/service/assettree"
)

func newMoveCmd(app *App) *cobra.Command {
	var onto string

	cmd := &cobra.Command{
		Use:   "move ID --onto TARGET",
		Short: "Drag a location or area onto another node",
		Long: "Drag a location or area onto TARGET. Dropping on a location nests the node\n" +
			"under it; dropping on an area places the node next to that area.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, builder, err := newView(cmd, app)
			if err != nil {
				return err
			}

			dragged := view.Find(args[0])
			if dragged == nil {
				return &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", args[0])}
			}
			target := view.Find(onto)
			if target == nil {
				return &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", onto)}
			}

			reparenter := assettree.NewReparenter(app.Backend, builder, app.Logger)
			if err := reparenter.BeginDrag(dragged); err != nil {
				return err
			}
			accepted, err := reparenter.Hover(target)
			if err != nil {
				return err
			}
			if !accepted {
				reparenter.Cancel()
				return domain.NewValidationError("%s %q is not a drop target", target.Kind, target.Name)
			}

			roots, err := reparenter.Drop(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if roots == nil {
				fmt.Fprintln(out, "Nothing to move")
				return nil
			}

			moved := models.Find(roots, dragged.ID)
			if moved == nil || moved.ParentID == nil {
				fmt.Fprintf(out, "Moved %q to the top level\n", dragged.Name)
				return nil
			}
			parentName := *moved.ParentID
			if parent := models.Find(roots, *moved.ParentID); parent != nil {
				parentName = parent.Name
			}
			fmt.Fprintf(out, "Moved %q under %q\n", dragged.Name, parentName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&onto, "onto", "o", "", "Id of the node to drop onto")
	_ = cmd.MarkFlagRequired("onto")

	return cmd
}
