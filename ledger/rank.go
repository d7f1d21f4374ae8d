// SPDX-License-Identifier: GPL-3.0-or-later
package ledger

import "sort"

// Rank orders the records by contact count, then by most recent contact. Records that
// never carried a timestamp sort after all others with the same count, remaining ties
// keep creation order.
func Rank(l *Ledger) []*Record {
	records := l.Records()
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ContactCount != b.ContactCount {
			return a.ContactCount > b.ContactCount
		}
		return a.LastSeen.After(b.LastSeen)
	})
	return records
}
