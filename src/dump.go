package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// dumpTable prints every row of table as a console table.
func dumpTable(store *Store, table string, out io.Writer) error {
	res, err := store.Fetch(table)
	if err != nil {
		return err
	}

	tw := tablewriter.NewWriter(out)
	tw.SetHeader(res.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if def, ok := lookupTable(table); ok {
		tw.SetCaption(true, def.Label)
	}
	tw.AppendBulk(res.Rows)
	tw.Render()
	return nil
}
