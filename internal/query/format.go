package query

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
)

// FormatResultSet renders rows as a fixed-width text table. Horizontal
// rules are drawn at the top, after the header row, and at the bottom;
// each column is as wide as its widest cell.
func FormatResultSet(rs *ResultSet) string {
	if rs == nil || len(rs.Rows) == 0 {
		return ""
	}

	var buf bytes.Buffer
	w := tablewriter.NewWriter(&buf)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetHeader(rs.Rows[0])
	for _, row := range rs.Rows[1:] {
		w.Append(row)
	}
	w.Render()
	return buf.String()
}
