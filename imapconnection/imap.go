// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io"
	"sort"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/log"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/charset"
	"github.com/sirupsen/logrus"
)

const BatchSize = 50

func init() {
	// Decode non UTF-8 personal names in envelopes
	imap.CharsetReader = charset.Reader
}

type ImapConnection struct {
	connection imapClient

	server, user string

	l *logrus.Logger
}

func NewImapConnection(server string, user string, password string, useCompression bool) (*ImapConnection, error) {
	c, err := client.DialTLS(server, nil)
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w", err)
	}

	conn := &ImapConnection{
		connection: c,
		server:     server,
		user:       user,
		l:          log.Logger(log.LOG_IMAP),
	}

	var cc compressor
	if useCompression {
		cc = compress.NewClient(c)
	}

	err = conn.setup(password, cc)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// setup logs in and, given a compressor, negotiates COMPRESS=DEFLATE. The connection is
// logged out when any step fails.
func (ic *ImapConnection) setup(password string, cc compressor) (err error) {
	defer func() {
		if err != nil {
			ic.abort()
		}
	}()

	err = ic.connection.Login(ic.user, password)
	if err != nil {
		return fmt.Errorf("could not login to imap: %w", err)
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"server": ic.server, "user": ic.user})
	baseLogger.Debug("Logged in to server")

	if cc == nil {
		return nil
	}

	compressSupported, err := cc.SupportCompress(compress.Deflate)
	if err != nil {
		return fmt.Errorf("could not check for COMPRESS support: %w", err)
	}

	if !compressSupported {
		baseLogger.Info("COMPRESS not supported on server, continuing uncompressed")
		return nil
	}

	err = cc.Compress(compress.Deflate)
	if err != nil {
		return fmt.Errorf("could not enable compression: %w", err)
	}
	baseLogger.Debug("COMPRESS=DEFLATE enabled")

	return nil
}

func (ic *ImapConnection) abort() {
	err := ic.connection.Logout()
	if err != nil {
		ic.l.WithFields(logrus.Fields{"server": ic.server, "error": err}).Debug("Could not log out after failed setup")
	}
}

func (ic *ImapConnection) Folders() ([]*domain.Folder, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.List("", "*", mailboxes)
	}()

	infos := []*imap.MailboxInfo{}
	for m := range mailboxes {
		infos = append(infos, m)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	folders := make([]*domain.Folder, 0, len(infos))
	for _, info := range infos {
		folder := &domain.Folder{
			Name:       info.Name,
			Delimiter:  info.Delimiter,
			Attributes: info.Attributes,
		}

		if !hasAttribute(info.Attributes, imap.NoSelectAttr) {
			status, err := ic.connection.Status(info.Name, []imap.StatusItem{imap.StatusMessages})
			if err != nil {
				ic.l.WithFields(logrus.Fields{"folder": info.Name, "error": err}).Warn("Could not get folder status")
			} else {
				folder.Messages = status.Messages
			}
		}

		folders = append(folders, folder)
	}

	return folders, nil
}

func hasAttribute(attributes []string, attribute string) bool {
	for _, a := range attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// OpenFolder examines the folder read-only and returns its mails newest first.
func (ic *ImapConnection) OpenFolder(folder *domain.Folder) (domain.ItemSource, error) {
	_, err := ic.connection.Select(folder.Name, true)
	if err != nil {
		return nil, fmt.Errorf("could not select folder: %w", err)
	}

	// Get all UIDs in folder (empty search criteria)
	criteria := imap.NewSearchCriteria()
	uids, err := ic.connection.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not list folder: %w", err)
	}

	// Higher UIDs were appended later
	sort.Slice(uids, func(i, j int) bool {
		return uids[i] > uids[j]
	})

	ic.l.WithFields(logrus.Fields{"folder": folder.Name, "mails": len(uids)}).Debug("Selected folder")

	return &folderSource{
		conn:    ic,
		total:   len(uids),
		batches: partitionUids(uids, BatchSize),
	}, nil
}

func (ic *ImapConnection) Close() error {
	return ic.connection.Logout()
}

func (ic *ImapConnection) fetchEnvelopes(uids []uint32) ([]domain.Item, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	fetchItems := []imap.FetchItem{imap.FetchUid, imap.FetchEnvelope, imap.FetchInternalDate}
	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.UidFetch(seqset, fetchItems, messages)
	}()

	byUid := map[uint32]*imap.Message{}
	for msg := range messages {
		byUid[msg.Uid] = msg
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch envelopes: %w", err)
	}

	// Servers answer in their own order
	items := make([]domain.Item, 0, len(uids))
	for _, uid := range uids {
		msg, ok := byUid[uid]
		if !ok {
			ic.l.WithField("uid", uid).Debug("Mail vanished before fetch")
			continue
		}
		items = append(items, &envelopeMail{uid: uid, envelope: msg.Envelope, internalDate: msg.InternalDate})
	}

	return items, nil
}

// folderSource fetches one batch of envelopes at a time.
type folderSource struct {
	conn    *ImapConnection
	total   int
	batches [][]uint32
	pending []domain.Item
}

func (s *folderSource) Count() int {
	return s.total
}

func (s *folderSource) Next() (domain.Item, error) {
	for len(s.pending) == 0 {
		if len(s.batches) == 0 {
			return nil, io.EOF
		}

		batch := s.batches[0]
		s.batches = s.batches[1:]

		items, err := s.conn.fetchEnvelopes(batch)
		if err != nil {
			return nil, fmt.Errorf("could not fetch mail batch: %w", err)
		}
		s.pending = items
	}

	item := s.pending[0]
	s.pending = s.pending[1:]
	return item, nil
}

func (s *folderSource) Close() error {
	s.batches = nil
	s.pending = nil
	return nil
}

func partitionUids(uids []uint32, partitionSize int) [][]uint32 {
	if len(uids) == 0 {
		return [][]uint32{}
	}

	batches := make([][]uint32, 0, (len(uids)+partitionSize-1)/partitionSize)
	for partitionSize < len(uids) {
		uids, batches = uids[partitionSize:], append(batches, uids[0:partitionSize:partitionSize])
	}
	batches = append(batches, uids)

	return batches
}
