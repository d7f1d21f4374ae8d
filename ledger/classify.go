// SPDX-License-Identifier: GPL-3.0-or-later
package ledger

import (
	"strconv"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/mail"
)

const DateFormat = "2006-01-02 15:04:05"

// OwnAccountSet collects the normalized addresses and aliases of the configured accounts.
func OwnAccountSet(accounts []*domain.Account) map[string]bool {
	own := map[string]bool{}
	for _, a := range accounts {
		if a == nil {
			continue
		}
		for _, address := range append([]string{a.Address}, a.Aliases...) {
			if key := mail.Normalize(address); len(key) > 0 {
				own[key] = true
			}
		}
	}
	return own
}

// ExportRow is the flat, string-only view of a record all exporters render.
type ExportRow struct {
	Email             string
	Name              string
	Type              string
	Account           string
	ContactCount      string
	LatestContactDate string
	Own               bool
}

// IsOwnAccount renders the own flag the way the file formats expect it.
func (r ExportRow) IsOwnAccount() string {
	if r.Own {
		return "Yes"
	}
	return ""
}

// Classify projects the ranked records to export rows, annotating own accounts.
// Timestamps are rendered in loc.
func Classify(records []*Record, own map[string]bool, loc *time.Location) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for _, r := range records {
		date := ""
		if !r.LastSeen.IsZero() {
			date = r.LastSeen.In(loc).Format(DateFormat)
		}

		rows = append(rows, ExportRow{
			Email:             r.Address,
			Name:              r.DisplayName,
			Type:              r.Role.String(),
			Account:           r.SourceAccount,
			ContactCount:      strconv.Itoa(r.ContactCount),
			LatestContactDate: date,
			Own:               own[mail.Normalize(r.Address)],
		})
	}
	return rows
}

// OwnCount counts the rows flagged as own account.
func OwnCount(rows []ExportRow) int {
	count := 0
	for _, r := range rows {
		if r.Own {
			count++
		}
	}
	return count
}
