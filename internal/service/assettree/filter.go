package assettree

import (
	"strings"

	models "iotdash/internal/domain/models/assettree"
)

// Filter prunes the forest to nodes whose name contains term
// (case-insensitive, trimmed) plus the ancestor path down to each match.
//
// A node that matches keeps its original children. A node kept only for a
// matching descendant is copied with just its filtered children. The source
// tree is never modified, and an empty term returns roots unchanged.
func Filter(roots []*models.TreeNode, term string) []*models.TreeNode {
	needle := normalizeTerm(term)
	if needle == "" {
		return roots
	}
	return filterNodes(roots, needle)
}

func filterNodes(nodes []*models.TreeNode, needle string) []*models.TreeNode {
	kept := make([]*models.TreeNode, 0)
	for _, node := range nodes {
		if node.MatchesName(needle) {
			kept = append(kept, node)
			continue
		}

		children := filterNodes(node.Children, needle)
		if len(children) == 0 {
			continue
		}
		cp := node.ShallowCopy()
		cp.Children = children
		kept = append(kept, cp)
	}
	return kept
}

// ExpansionTargets returns the ids a caller should expand so every match in
// a filtered forest is visible: each kept ancestor and each match itself.
// Subtrees kept whole under a match are not opened.
func ExpansionTargets(filtered []*models.TreeNode, term string) []string {
	needle := normalizeTerm(term)
	if needle == "" {
		return nil
	}

	var ids []string
	models.Walk(filtered, func(node *models.TreeNode, _ int) bool {
		ids = append(ids, node.ID)
		return !node.MatchesName(needle)
	})
	return ids
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
