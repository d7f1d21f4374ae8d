// SPDX-License-Identifier: GPL-3.0-or-later
package export

import (
	"encoding/json"
	"io"

	"github.com/CrawX/go-imap-correspondents/ledger"
)

// recipientJSON keeps the key order of the delimited export.
type recipientJSON struct {
	Email             string `json:"Email"`
	Name              string `json:"Name"`
	Type              string `json:"Type"`
	Account           string `json:"Account"`
	ContactCount      string `json:"ContactCount"`
	LatestContactDate string `json:"LatestContactDate"`
	IsOwnAccount      string `json:"IsOwnAccount"`
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSON writes the rows as an array of flat objects, without a BOM.
func WriteJSON(w io.Writer, rows []ledger.ExportRow) error {
	out := make([]recipientJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, recipientJSON{
			Email:             r.Email,
			Name:              r.Name,
			Type:              r.Type,
			Account:           r.Account,
			ContactCount:      r.ContactCount,
			LatestContactDate: r.LatestContactDate,
			IsOwnAccount:      r.IsOwnAccount(),
		})
	}
	return encodeJSON(w, out)
}

func ExportJSON(path string, rows []ledger.ExportRow) error {
	return writeFile(path, "json", func(w io.Writer) error {
		return WriteJSON(w, rows)
	})
}
