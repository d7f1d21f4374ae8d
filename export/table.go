// SPDX-License-Identifier: GPL-3.0-or-later
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/CrawX/go-imap-correspondents/ledger"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	RecipientWidthCap = 50
	ContactWidthCap   = 40

	ellipsis  = "..."
	ownMarker = "*"
)

var recipientTableHeader = []string{"Email", "Name", "Type", "Account", "Times Contacted", "Latest Contact", "Own"}

type TableOptions struct {
	// HighlightOwn colors the email cell of own account rows when w is a terminal.
	HighlightOwn bool
}

type table struct {
	headers []string
	rows    [][]string
	widths  []int
}

func newTable(headers []string, rows [][]string, widthCap int) *table {
	widths := make([]int, len(headers))
	for c, h := range headers {
		widths[c] = runewidth.StringWidth(h)
		for _, row := range rows {
			w := runewidth.StringWidth(row[c])
			if w > widthCap {
				w = widthCap
			}
			if w > widths[c] {
				widths[c] = w
			}
		}
	}

	return &table{headers: headers, rows: rows, widths: widths}
}

func (t *table) separator(sb *strings.Builder) {
	sb.WriteString("+")
	for _, w := range t.widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
}

func (t *table) cell(value string, c int) string {
	return runewidth.FillRight(runewidth.Truncate(value, t.widths[c], ellipsis), t.widths[c])
}

// render writes the grid. style, if set, may decorate a padded data cell.
func (t *table) render(sb *strings.Builder, style func(row, c int, cell string) string) {
	sb.WriteString("\n")
	t.separator(sb)

	sb.WriteString("|")
	for c, h := range t.headers {
		sb.WriteString(" " + t.cell(h, c) + " |")
	}
	sb.WriteString("\n")
	t.separator(sb)

	for r, row := range t.rows {
		sb.WriteString("|")
		for c, v := range row {
			cell := t.cell(v, c)
			if style != nil {
				cell = style(r, c, cell)
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	t.separator(sb)
}

// WriteTable renders the ranked rows as a bordered grid followed by a summary.
func WriteTable(w io.Writer, rows []ledger.ExportRow, opts TableOptions) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No recipients to display.\n")
		return err
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		own := ""
		if r.Own {
			own = ownMarker
		}
		cells = append(cells, []string{r.Email, r.Name, r.Type, r.Account, r.ContactCount, r.LatestContactDate, own})
	}

	renderer := lipgloss.NewRenderer(w)
	ownStyle := renderer.NewStyle().Foreground(lipgloss.Color("6"))

	var style func(row, c int, cell string) string
	if opts.HighlightOwn {
		style = func(row, c int, cell string) string {
			if c == 0 && rows[row].Own {
				return ownStyle.Render(cell)
			}
			return cell
		}
	}

	var sb strings.Builder
	newTable(recipientTableHeader, cells, RecipientWidthCap).render(&sb, style)

	sb.WriteString(fmt.Sprintf("\nTotal: %d unique recipients (sorted by most contacted)\n", len(rows)))
	if own := ledger.OwnCount(rows); own > 0 {
		legend := ownMarker + " = Own account"
		if opts.HighlightOwn {
			legend = ownStyle.Render(legend)
		}
		sb.WriteString(fmt.Sprintf("%s (%d account(s) used for export)\n", legend, own))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
