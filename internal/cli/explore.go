package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/catalog"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/pipeline"
)

// exploreCommand creates the explore command, a terminal view of the map.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		src sourceFlags
		lay layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the mind map in the terminal",
		Long: `Browse the mind map in the terminal.

Sections expand into the models the map shows for them. Selecting a model
prints its navigation path and explanation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			src.apply(cmd, &opts)
			lay.apply(cmd, &opts)
			return c.runExplore(cmd.Context(), opts, src.noCache)
		},
	}

	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	snap, _, err := c.load(ctx, runner, opts)
	if err != nil {
		return err
	}
	g := runner.Layout(ctx, snap, opts)

	final, err := tea.NewProgram(NewExploreModel(g, snap), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}

	m, ok := final.(ExploreModel)
	if !ok || m.Selected == nil {
		return nil
	}
	printSelection(*m.Selected, snap)
	return nil
}

// printSelection shows where a chosen node navigates and, for models, what
// the model says.
func printSelection(n mindmap.Node, snap *catalog.Snapshot) {
	intent := mindmap.Navigate(n)
	printSuccess("%s", n.Label)
	printKeyValue("Navigate", intent.Path)
	if intent.Action != mindmap.NavModel {
		return
	}
	if model, ok := snap.FindModel(intent.SectionSlug, *intent.ModelIndex); ok {
		printKeyValue("Section", model.SectionName)
		if model.Explanation != "" {
			printNewline()
			fmt.Println(lipgloss.NewStyle().Width(80).Render(model.Explanation))
		}
	}
}

// =============================================================================
// ExploreModel - Interactive mind-map tree
// =============================================================================

var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorIndigo)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type treeRow struct {
	node  mindmap.Node
	depth int
}

// ExploreModel is the bubbletea model for browsing a mind map as a tree.
type ExploreModel struct {
	Graph    mindmap.Graph
	Snapshot *catalog.Snapshot
	Expanded map[string]bool
	Cursor   int
	Offset   int
	Height   int
	Selected *mindmap.Node
}

// NewExploreModel creates an explorer with every section collapsed.
func NewExploreModel(g mindmap.Graph, snap *catalog.Snapshot) ExploreModel {
	return ExploreModel{
		Graph:    g,
		Snapshot: snap,
		Expanded: make(map[string]bool),
		Height:   15,
	}
}

// rows flattens the visible part of the tree.
func (m ExploreModel) rows() []treeRow {
	root, ok := m.Graph.Root()
	if !ok {
		return nil
	}
	rows := []treeRow{{node: root}}
	for _, s := range m.Graph.Children(root.ID) {
		rows = append(rows, treeRow{node: s, depth: 1})
		if m.Expanded[s.ID] {
			for _, model := range m.Graph.Children(s.ID) {
				rows = append(rows, treeRow{node: model, depth: 2})
			}
		}
	}
	return rows
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(rows)-1 {
				m.Cursor++
			}
		case "right", "l":
			if m.Cursor < len(rows) && rows[m.Cursor].node.Kind == mindmap.KindSection {
				m.Expanded[rows[m.Cursor].node.ID] = true
			}
		case "left", "h":
			m.collapse(rows)
		case "enter", " ":
			if m.Cursor >= len(rows) {
				return m, nil
			}
			n := rows[m.Cursor].node
			switch n.Kind {
			case mindmap.KindSection:
				if msg.String() == " " {
					m.Expanded[n.ID] = !m.Expanded[n.ID]
					return m, nil
				}
				m.Selected = &n
				return m, tea.Quit
			case mindmap.KindModel:
				m.Selected = &n
				return m, tea.Quit
			case mindmap.KindRoot:
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	m.scroll()
	return m, nil
}

// collapse folds the section under the cursor, or the section owning the
// model under the cursor, and moves the cursor onto it.
func (m *ExploreModel) collapse(rows []treeRow) {
	if m.Cursor >= len(rows) {
		return
	}
	for i := m.Cursor; i >= 0; i-- {
		if rows[i].node.Kind == mindmap.KindSection {
			delete(m.Expanded, rows[i].node.ID)
			m.Cursor = i
			return
		}
	}
}

func (m *ExploreModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Mind Map"))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  →/← expand/collapse  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := m.rows()
	end := min(m.Offset+m.Height, len(rows))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.Cursor))
		b.WriteString("\n")
	}

	if m.Cursor < len(rows) {
		b.WriteString("\n")
		b.WriteString(m.details(rows[m.Cursor].node))
		b.WriteString("\n")
	}
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(rows)), len(rows))))

	return b.String()
}

func (m ExploreModel) renderRow(r treeRow, current bool) string {
	cursor := "  "
	if current {
		cursor = "▸ "
	}
	marker := ""
	switch r.node.Kind {
	case mindmap.KindSection:
		marker = "+ "
		if m.Expanded[r.node.ID] {
			marker = "- "
		}
	case mindmap.KindModel:
		marker = "· "
	case mindmap.KindRoot:
	}

	line := cursor + strings.Repeat("  ", r.depth) + marker + r.node.Label
	if r.node.Kind == mindmap.KindSection {
		line += treeDimStyle.Render(fmt.Sprintf("  (%d)", r.node.ModelCount))
	}
	if current {
		return treeSelectedStyle.Render(line)
	}
	return treeNormalStyle.Render(line)
}

// details renders a small table describing n.
func (m ExploreModel) details(n mindmap.Node) string {
	intent := mindmap.Navigate(n)
	rows := [][]string{{"Kind", n.Kind.String()}}
	if !intent.None() {
		rows = append(rows, []string{"Navigate", intent.Path})
	}

	switch n.Kind {
	case mindmap.KindSection:
		rows = append(rows, []string{"Models", strconv.Itoa(n.ModelCount)})
		if s, ok := m.Snapshot.Section(intent.SectionSlug); ok && s.Description != "" {
			rows = append(rows, []string{"About", truncate(s.Description, 60)})
		}
	case mindmap.KindModel:
		if model, ok := m.Snapshot.FindModel(intent.SectionSlug, *intent.ModelIndex); ok && model.Explanation != "" {
			rows = append(rows, []string{"About", truncate(model.Explanation, 60)})
		}
	case mindmap.KindRoot:
		rows = append(rows, []string{"Sections", strconv.Itoa(m.Graph.CountKind(mindmap.KindSection))})
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
