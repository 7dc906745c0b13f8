package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"iotdash/internal/cli/formatter"
	models "iotdash/internal/domain/models/assettree"
	"iotdash/internal/service/assettree"
)

func newTreeCmd(app *App) *cobra.Command {
	var search string
	var expandAll bool
	var expand []string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the asset hierarchy",
		Long: "Show the asset hierarchy. Roots are expanded; --search keeps only matching\n" +
			"nodes and their ancestors and opens the path to every match.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := newView(cmd, app)
			if err != nil {
				return err
			}

			if strings.TrimSpace(search) != "" {
				view.Search(search)
			}
			if expandAll {
				view.Expansion().ExpandAll(models.IDs(view.Visible()))
			}
			view.Expansion().ExpandAll(expand)

			out := cmd.OutOrStdout()
			rows := view.Rows()
			if len(rows) == 0 {
				if view.Term() != "" {
					fmt.Fprintf(out, "No nodes match %q\n", search)
				} else {
					fmt.Fprintln(out, "The asset tree is empty")
				}
				return nil
			}

			fmt.Fprintln(out, formatter.Header("Assets"))
			fmt.Fprint(out, formatter.RenderTree(treeItems(rows)))
			fmt.Fprintln(out, formatter.Dim(summary(view.Roots())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name filter")
	cmd.Flags().BoolVarP(&expandAll, "expand-all", "a", false, "Expand every node")
	cmd.Flags().StringSliceVarP(&expand, "expand", "e", nil, "Node ids to expand")

	return cmd
}

func treeItems(rows []assettree.Row) []formatter.TreeItem {
	items := make([]formatter.TreeItem, len(rows))
	for i, row := range rows {
		items[i] = formatter.TreeItem{
			Title:      row.Node.Name,
			Kind:       string(row.Node.Kind),
			Status:     string(row.Node.Status),
			Level:      row.Depth,
			IsLast:     row.IsLast,
			Expandable: row.Node.HasChildren(),
			Expanded:   row.Expanded,
			Detail:     detail(row.Node),
		}
	}
	return items
}

// detail is the badge shown next to a node
func detail(n *models.TreeNode) string {
	switch n.Kind {
	case models.KindLocation, models.KindArea:
		if n.DeviceCount == 0 {
			return ""
		}
		parts := []string{
			formatter.Plural(n.DeviceCount, "device", "devices"),
			fmt.Sprintf("%d active", n.ActiveDeviceCount),
		}
		if n.AlertCount > 0 {
			parts = append(parts, formatter.Plural(n.AlertCount, "alert", "alerts"))
		}
		return strings.Join(parts, " · ")
	case models.KindDevice:
		if n.AlertCount > 0 {
			return formatter.Plural(n.AlertCount, "alert", "alerts")
		}
	case models.KindDataPoint:
		if m, ok := n.Metadata.(*models.DataPointMetadata); ok && m.Unit != "" {
			return m.Unit
		}
	}
	return ""
}

func summary(roots []*models.TreeNode) string {
	return fmt.Sprintf("%s, %s, %s, %s",
		formatter.Plural(models.Count(roots, models.KindLocation), "location", "locations"),
		formatter.Plural(models.Count(roots, models.KindArea), "area", "areas"),
		formatter.Plural(models.Count(roots, models.KindDevice), "device", "devices"),
		formatter.Plural(models.Count(roots, models.KindDataPoint), "data point", "data points"),
	)
}
