package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/efaktura/internal/money"
)

// table is a rendered result for --format table.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// output writes v as JSON, or tbl as aligned columns when --format table
// is set. A nil tbl falls back to JSON.
func output(v any, tbl func() *table) error {
	return writeOutput(os.Stdout, v, tbl)
}

func writeOutput(w io.Writer, v any, tbl func() *table) error {
	switch outputFormat {
	case "json", "":
		return outputJSON(w, v)
	case "table":
		if tbl == nil {
			return outputJSON(w, v)
		}
		return outputTable(w, tbl())
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputTable(w io.Writer, t *table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))

	dashes := make([]string, len(t.header))
	for i, h := range t.header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// str renders an optional field for a table cell.
func str[T any](p *T) string {
	if p == nil {
		return ""
	}
	switch v := any(*p).(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case decimal.Decimal:
		return money.Round2(v).StringFixed(2)
	case bool:
		if v {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(v)
	}
}
