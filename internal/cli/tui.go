package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/csrgraph/pkg/csr"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// maxPreview is the number of neighbors shown per table row.
const maxPreview = 8

// =============================================================================
// VertexListModel - Interactive vertex browser
// =============================================================================

// VertexListModel is the bubbletea model for browsing the vertices of a graph.
type VertexListModel struct {
	Graph    *csr.Graph
	InDegree []int
	Cursor   int
	Selected int // -1 until a vertex is chosen
	Height   int
	Offset   int
}

// NewVertexListModel creates a vertex browser for g. In-degrees are taken
// from the transposed graph.
func NewVertexListModel(g *csr.Graph) (VertexListModel, error) {
	t, err := csr.Transpose(g)
	if err != nil {
		return VertexListModel{}, err
	}
	in := make([]int, g.N())
	for i := range in {
		in[i] = t.Degree(i)
	}
	t.Release()

	return VertexListModel{
		Graph:    g,
		InDegree: in,
		Selected: -1,
		Height:   15,
	}, nil
}

func (m VertexListModel) Init() tea.Cmd {
	return nil
}

func (m VertexListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := m.Graph.N()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-n)
		case "end", "G":
			m.move(n)
		case "enter":
			if n > 0 {
				m.Selected = m.Cursor
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the vertex range, and scrolls
// the window so the cursor stays visible.
func (m *VertexListModel) move(delta int) {
	n := m.Graph.N()
	if n == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m VertexListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Graph: %d vertices, %d edges", m.Graph.N(), m.Graph.M())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  home/end jump  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, m.Graph.N())

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(i),
			strconv.Itoa(m.Graph.Degree(i)),
			strconv.Itoa(m.InDegree[i]),
			previewNeighbors(m.Graph.Vertex(i).Neighbors, maxPreview),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "Out", "In", "Neighbors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= m.Graph.N() {
				return lipgloss.NewStyle()
			}
			isolated := m.Graph.Degree(idx) == 0 && m.InDegree[idx] == 0

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorGray)
			}
			switch {
			case idx == m.Cursor && isolated:
				return base.Foreground(colorDim).Bold(true)
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			case isolated:
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	pos := 0
	if m.Graph.N() > 0 {
		pos = m.Cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", pos, m.Graph.N())))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// previewNeighbors joins at most limit ids, marking how many were left out.
func previewNeighbors(nbrs []int, limit int) string {
	if len(nbrs) == 0 {
		return "—"
	}
	parts := make([]string, 0, min(len(nbrs), limit)+1)
	for _, v := range nbrs[:min(len(nbrs), limit)] {
		parts = append(parts, strconv.Itoa(v))
	}
	if extra := len(nbrs) - limit; extra > 0 {
		parts = append(parts, fmt.Sprintf("+%d", extra))
	}
	return strings.Join(parts, " ")
}
