package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/service/assettree"
)

func newCreateCmd(app *App) *cobra.Command {
	var kind, parentID, description, address, manager string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a location or an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &assettree.CreateNodeRequest{
				Name:        args[0],
				Kind:        models.Kind(kind),
				Description: description,
				Address:     address,
				Manager:     manager,
			}
			if cmd.Flags().Changed("parent") {
				req.ParentID = &parentID
			}

			builder := assettree.NewBuilder(app.Backend, app.Logger)
			mutator := assettree.NewMutator(app.Backend, builder, app.Logger)

			roots, err := mutator.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q\n", req.Kind, req.Name)
			fmt.Fprintln(cmd.OutOrStdout(), summary(roots))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(models.KindLocation), "Node type (location|area)")
	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent location id (required for areas)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&manager, "manager", "", "Responsible manager")

	return cmd
}
