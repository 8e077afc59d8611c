package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// TerminalWidth returns the terminal width for w, or defaultTermWidth if w is
// not a terminal or the width cannot be determined.
func TerminalWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // uintptr→int is safe for file descriptors
			return width
		}
	}
	return defaultTermWidth
}

// NewWrappingTable returns a table that wraps cell content to fit the terminal.
// minWidth is the floor for the per-column max width; overhead is what borders,
// padding and fixed-width columns consume.
func NewWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{AutoWrap: tw.WrapNormal},
				ColMaxWidths: tw.CellWidth{Global: maxColWidth(w, minWidth, overhead)},
			},
		}),
	)
}

// NewGroupedWrappingTable is NewWrappingTable with rows grouped by the first
// column: repeated leading cells are merged and groups are separated by lines.
// Used for services listed per category.
func NewGroupedWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.On},
			},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{MergeMode: tw.MergeHierarchical, AutoWrap: tw.WrapNormal},
				ColMaxWidths: tw.CellWidth{Global: maxColWidth(w, minWidth, overhead)},
			},
		}),
	)
}

func maxColWidth(w io.Writer, minWidth, overhead int) int {
	return max(minWidth, TerminalWidth(w)-overhead)
}
