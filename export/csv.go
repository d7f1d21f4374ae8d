// SPDX-License-Identifier: GPL-3.0-or-later
package export

import (
	"io"
	"strings"

	"github.com/CrawX/go-imap-correspondents/ledger"
)

const (
	delimiter = ","
	lineBreak = "\r\n"
)

var recipientHeader = []string{"Email", "Name", "Type", "Account", "ContactCount", "LatestContactDate", "IsOwnAccount"}

// escapeField quotes a field only if it contains the delimiter, a quote or a line break.
func escapeField(field string) string {
	if !strings.ContainsAny(field, delimiter+"\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func writeDelimited(w io.Writer, header []string, records [][]string) error {
	var sb strings.Builder
	for _, record := range append([][]string{header}, records...) {
		for i, field := range record {
			if i > 0 {
				sb.WriteString(delimiter)
			}
			sb.WriteString(escapeField(field))
		}
		sb.WriteString(lineBreak)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func recipientRecord(r ledger.ExportRow) []string {
	return []string{r.Email, r.Name, r.Type, r.Account, r.ContactCount, r.LatestContactDate, r.IsOwnAccount()}
}

// WriteCSV writes the header and one line per row, without a BOM.
func WriteCSV(w io.Writer, rows []ledger.ExportRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, recipientRecord(r))
	}
	return writeDelimited(w, recipientHeader, records)
}

func ExportCSV(path string, rows []ledger.ExportRow) error {
	return writeFile(path, "csv", func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
}
