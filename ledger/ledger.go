// SPDX-License-Identifier: GPL-3.0-or-later
package ledger

import (
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/mail"
)

// Record is one distinct correspondent.
type Record struct {
	// Address keeps the casing it was first observed with.
	Address       string
	DisplayName   string
	Role          domain.Role
	SourceAccount string
	ContactCount  int
	// LastSeen is zero while no event carried a timestamp.
	LastSeen time.Time
}

func (r *Record) observe(timestamp time.Time) {
	r.ContactCount++
	if timestamp.After(r.LastSeen) {
		r.LastSeen = timestamp
	}
}

// Ledger aggregates correspondents by normalized address. It has a single writer and
// is read-only once the walk is complete.
type Ledger struct {
	records map[string]*Record
	order   []*Record
}

func New() *Ledger {
	return &Ledger{
		records: map[string]*Record{},
	}
}

// MergeOrCreate records one event for address. Empty addresses are ignored.
func (l *Ledger) MergeOrCreate(address, displayName string, role domain.Role, account string, timestamp time.Time) {
	key := mail.Normalize(address)
	if len(key) == 0 {
		return
	}

	record, ok := l.records[key]
	if !ok {
		record = &Record{
			Address:       address,
			Role:          role,
			SourceAccount: account,
		}
		l.records[key] = record
		l.order = append(l.order, record)
	}

	record.DisplayName = displayName
	record.observe(timestamp)
}

func (l *Ledger) Len() int {
	return len(l.order)
}

// Get looks up a record by any casing of its address.
func (l *Ledger) Get(address string) (*Record, bool) {
	r, ok := l.records[mail.Normalize(address)]
	return r, ok
}

// Records returns the records in creation order.
func (l *Ledger) Records() []*Record {
	records := make([]*Record, len(l.order))
	copy(records, l.order)
	return records
}
