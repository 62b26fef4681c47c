package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the interactive vertex browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <adjacency-file>",
		Short: "Browse the vertices of an adjacency file interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Loading %s...", args[0]))
			spinner.Start()
			g, err := loadGraph(args[0])
			if err != nil {
				spinner.StopWithError("Failed to load graph")
				return err
			}
			defer g.Release()
			m, err := NewVertexListModel(g)
			spinner.Stop()
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(VertexListModel)
			if !ok || fm.Selected < 0 {
				printDetail("No vertex selected")
				return nil
			}

			v := fm.Selected
			printNewline()
			printKeyValue("vertex", StyleHighlight.Render(strconv.Itoa(v)))
			printKeyValue("out-degree", strconv.Itoa(g.Degree(v)))
			printKeyValue("in-degree", strconv.Itoa(fm.InDegree[v]))
			printKeyValue("neighbors", previewNeighbors(g.Vertex(v).Neighbors, 64))
			return nil
		},
	}
}
