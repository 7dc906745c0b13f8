package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one visible row of the asset tree
type TreeItem struct {
	Title      string
	Kind       string
	Status     string
	Level      int
	IsLast     bool
	Expandable bool
	Expanded   bool
	Detail     string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "

	markerOpen   = "▾ "
	markerClosed = "▸ "
	markerLeaf   = "  "
)

// RenderTree renders rows in pre-order with box-drawing connectors and
// right-aligned detail badges. A connector column is left blank below an
// ancestor that was the last of its siblings.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0
	var lastAt []bool

	// Pass 1: build each line and track the widest one
	for idx, item := range items {
		if item.Level < len(lastAt) {
			lastAt = lastAt[:item.Level]
		}
		for len(lastAt) < item.Level {
			lastAt = append(lastAt, false)
		}

		var prefix strings.Builder
		for level := 1; level < item.Level; level++ {
			if lastAt[level] {
				prefix.WriteString(treeSpace)
			} else {
				prefix.WriteString(treePipe)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		lastAt = append(lastAt, item.IsLast)

		marker := markerLeaf
		if item.Expandable {
			marker = markerClosed
			if item.Expanded {
				marker = markerOpen
			}
		}

		content := prefix.String() + StyleDim.Render(marker) + StatusDot(item.Status) + " " +
			StyleFg.Render(item.Title)
		if item.Kind != "" {
			content += " " + Dim("("+item.Kind+")")
		}
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: pad so badges line up
	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}

	return b.String()
}
