package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/csr"
	csrio "github.com/matzehuels/csrgraph/pkg/io"
)

// statCommand creates the stat command for summarizing adjacency files.
func (c *CLI) statCommand() *cobra.Command {
	var (
		weighted bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stat <adjacency-file>",
		Short: "Print vertex, edge and degree statistics",
		Example: `  csrgraph stat web-Google.adj
  csrgraph stat roads.adj --weighted --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.summarize(args[0], weighted)
			if err != nil {
				return err
			}
			if asJSON {
				return writeSummaryJSON(cmd.OutOrStdout(), s)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summaryTable(s))
			return err
		},
	}

	cmd.Flags().BoolVar(&weighted, "weighted", false, "read a WeightedAdjacencyGraph file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// summarize loads the adjacency file at path and computes its statistics.
func (c *CLI) summarize(path string, weighted bool) (csr.Summary, error) {
	prog := newProgress(c.Logger)
	if weighted {
		g, err := csrio.ImportWeightedAdjacency(path)
		if err != nil {
			return csr.Summary{}, err
		}
		defer g.Release()
		prog.done("read weighted adjacency file", "vertices", g.N(), "edges", g.M())
		return csr.SummarizeWeighted(g)
	}
	g, err := loadGraph(path)
	if err != nil {
		return csr.Summary{}, err
	}
	defer g.Release()
	prog.done("read adjacency file", "vertices", g.N(), "edges", g.M())
	return csr.Summarize(g)
}

// loadGraph reads an unweighted adjacency file.
func loadGraph(path string) (*csr.Graph, error) {
	return csrio.ImportAdjacency(path)
}

func writeSummaryJSON(w io.Writer, s csr.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// summaryTable renders the overview and the degree distributions as two
// lipgloss tables.
func summaryTable(s csr.Summary) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	style := func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle.Padding(0, 1)
		case col == 0:
			return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
		default:
			return StyleNumber.Padding(0, 1)
		}
	}

	overview := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Graph", "").
		Row("vertices", strconv.Itoa(s.Vertices)).
		Row("edges", strconv.Itoa(s.Edges)).
		Row("density", strconv.FormatFloat(s.Density, 'g', 4, 64)).
		Row("self-loops", strconv.Itoa(s.SelfLoops)).
		Row("isolated", strconv.Itoa(s.Isolated)).
		StyleFunc(style)

	dist := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "min", "max", "mean", "stddev", "median", "sum").
		Row(distributionRow("out-degree", s.OutDegree)...).
		Row(distributionRow("in-degree", s.InDegree)...).
		StyleFunc(style)
	if s.Weights != nil {
		dist.Row(distributionRow("weight", *s.Weights)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, overview.Render(), dist.Render())
}

func distributionRow(name string, d csr.Distribution) []string {
	return []string{
		name,
		strconv.Itoa(d.Min),
		strconv.Itoa(d.Max),
		strconv.FormatFloat(d.Mean, 'f', 2, 64),
		strconv.FormatFloat(d.StdDev, 'f', 2, 64),
		strconv.FormatFloat(d.Median, 'f', 1, 64),
		strconv.Itoa(d.Sum),
	}
}
