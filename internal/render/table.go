package render

import (
	"fmt"
	"html"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// NewTable returns a rounded table writer that mirrors its output to w.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func tableOf(rows []Row, w io.Writer) table.Writer {
	t := NewTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Key, r.Value})
	}
	return t
}

// WriteTable prints rows as a terminal table.
func WriteTable(w io.Writer, rows []Row) {
	tableOf(rows, w).Render()
}

// TableHTML returns rows as an HTML table.
func TableHTML(rows []Row) string {
	return tableOf(rows, nil).RenderHTML()
}

// Write prints out to w. Table output becomes a terminal table; JSON output is
// printed as decorated text when available.
func Write(w io.Writer, out Output) {
	if out.Mode == ModeTable {
		WriteTable(w, out.Rows)
		return
	}
	fmt.Fprintln(w, out.Text())
}

// WriteHTML prints out to w as an HTML fragment.
func WriteHTML(w io.Writer, out Output) {
	if out.Mode == ModeTable {
		fmt.Fprintln(w, TableHTML(out.Rows))
		return
	}
	text := out.Decorated
	if text == "" {
		text = html.EscapeString(out.JSON)
	}
	fmt.Fprintf(w, "<pre class=\"json-display\">%s</pre>\n", text)
}
