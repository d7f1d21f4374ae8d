// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import "github.com/emersion/go-imap"

//go:generate mockgen -destination=client_mocks_test.go -package=imapconnection -source client.go

// imapClient is the read-only subset of *client.Client the connection needs.
type imapClient interface {
	Login(username, password string) error
	List(ref, name string, ch chan *imap.MailboxInfo) error
	Status(name string, items []imap.StatusItem) (*imap.MailboxStatus, error)
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	Logout() error
}

// compressor is the COMPRESS extension client.
type compressor interface {
	SupportCompress(mech string) (bool, error)
	Compress(mech string) error
}
