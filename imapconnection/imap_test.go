// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/log"
	"github.com/emersion/go-imap"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newTestConnection(ctrl *gomock.Controller) (*ImapConnection, *MockimapClient) {
	conn := NewMockimapClient(ctrl)
	return &ImapConnection{connection: conn, l: log.NullLogger()}, conn
}

func TestPartitionUids(t *testing.T) {
	tests := []struct {
		name     string
		uids     []uint32
		size     int
		expected [][]uint32
	}{
		{"empty", u32a(), 2, [][]uint32{}},
		{"single", u32a(1), 2, [][]uint32{u32a(1)}},
		{"exact", u32a(4, 3, 2, 1), 2, [][]uint32{u32a(4, 3), u32a(2, 1)}},
		{"remainder", u32a(5, 4, 3, 2, 1), 2, [][]uint32{u32a(5, 4), u32a(3, 2), u32a(1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, partitionUids(tc.uids, tc.size))
		})
	}
}

func TestFolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)

	conn.EXPECT().
		List(gomock.Eq(""), gomock.Eq("*"), gomock.Any()).
		DoAndReturn(func(ref, name string, ch chan *imap.MailboxInfo) error {
			ch <- &imap.MailboxInfo{Name: "INBOX", Delimiter: "/"}
			ch <- &imap.MailboxInfo{Name: "[Gmail]", Delimiter: "/", Attributes: []string{imap.NoSelectAttr}}
			ch <- &imap.MailboxInfo{Name: "[Gmail]/Sent Mail", Delimiter: "/", Attributes: []string{`\Sent`}}
			close(ch)
			return nil
		})
	conn.EXPECT().
		Status(gomock.Eq("INBOX"), gomock.Any()).
		Return(&imap.MailboxStatus{Messages: 12}, nil)
	conn.EXPECT().
		Status(gomock.Eq("[Gmail]/Sent Mail"), gomock.Any()).
		Return(nil, fmt.Errorf("no status"))

	folders, err := ic.Folders()
	assert.NoError(t, err)
	assert.Equal(t, []*domain.Folder{
		{Name: "INBOX", Delimiter: "/", Messages: 12},
		{Name: "[Gmail]", Delimiter: "/", Attributes: []string{imap.NoSelectAttr}},
		{Name: "[Gmail]/Sent Mail", Delimiter: "/", Attributes: []string{`\Sent`}},
	}, folders)
}

func TestFoldersError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)
	conn.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ref, name string, ch chan *imap.MailboxInfo) error {
			close(ch)
			return fmt.Errorf("BAD")
		})

	_, err := ic.Folders()
	assert.EqualError(t, err, "could not list folders: BAD")
}

func message(uid uint32, from string) *imap.Message {
	return &imap.Message{
		Uid: uid,
		Envelope: &imap.Envelope{
			From: []*imap.Address{{MailboxName: from, HostName: "example.com"}},
		},
		InternalDate: time.Date(2024, 1, int(uid), 0, 0, 0, 0, time.UTC),
	}
}

func TestOpenFolderNewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)

	conn.EXPECT().Select(gomock.Eq("INBOX"), gomock.Eq(true)).Return(&imap.MailboxStatus{}, nil)
	conn.EXPECT().UidSearch(gomock.Any()).Return(u32a(1, 3, 2), nil)
	conn.EXPECT().
		UidFetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
			// out of order, and uid 2 vanished
			ch <- message(1, "one")
			ch <- message(3, "three")
			close(ch)
			return nil
		})

	source, err := ic.OpenFolder(&domain.Folder{Name: "INBOX"})
	assert.NoError(t, err)
	assert.Equal(t, 3, source.Count())

	senders := []string{}
	for {
		item, err := source.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)

		sender, err := item.(domain.MailItem).Sender()
		assert.NoError(t, err)
		senders = append(senders, sender.Address.Direct)
	}

	assert.Equal(t, []string{"three@example.com", "one@example.com"}, senders)
	assert.NoError(t, source.Close())
}

func TestOpenFolderFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)

	conn.EXPECT().Select(gomock.Any(), gomock.Any()).Return(&imap.MailboxStatus{}, nil)
	conn.EXPECT().UidSearch(gomock.Any()).Return(u32a(1), nil)
	conn.EXPECT().
		UidFetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
			close(ch)
			return fmt.Errorf("connection reset")
		})

	source, err := ic.OpenFolder(&domain.Folder{Name: "INBOX"})
	assert.NoError(t, err)

	_, err = source.Next()
	assert.EqualError(t, err, "could not fetch mail batch: could not fetch envelopes: connection reset")
}

func TestOpenFolderSelectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)
	conn.EXPECT().Select(gomock.Eq("Gone"), gomock.Eq(true)).Return(nil, fmt.Errorf("NO"))

	_, err := ic.OpenFolder(&domain.Folder{Name: "Gone"})
	assert.EqualError(t, err, "could not select folder: NO")
}

func TestClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ic, conn := newTestConnection(ctrl)
	conn.EXPECT().Logout().Return(nil)

	assert.NoError(t, ic.Close())
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		compression bool
		loginErr    error
		supported   bool
		supportErr  error
		compressErr error
		expectedErr string
	}{
		{name: "login only"},
		{name: "login fails", loginErr: fmt.Errorf("bad credentials"), expectedErr: "could not login to imap: bad credentials"},
		{name: "compressed", compression: true, supported: true},
		{name: "compress unsupported", compression: true},
		{name: "support check fails", compression: true, supportErr: fmt.Errorf("bye"), expectedErr: "could not check for COMPRESS support: bye"},
		{name: "compress fails", compression: true, supported: true, compressErr: fmt.Errorf("bye"), expectedErr: "could not enable compression: bye"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ic, conn := newTestConnection(ctrl)
			ic.user = "me"

			conn.EXPECT().Login(gomock.Eq("me"), gomock.Eq("secret")).Return(tc.loginErr)

			var cc compressor
			if tc.compression && tc.loginErr == nil {
				mc := NewMockcompressor(ctrl)
				mc.EXPECT().SupportCompress(gomock.Eq("DEFLATE")).Return(tc.supported, tc.supportErr)
				if tc.supported && tc.supportErr == nil {
					mc.EXPECT().Compress(gomock.Eq("DEFLATE")).Return(tc.compressErr)
				}
				cc = mc
			}

			if len(tc.expectedErr) > 0 {
				// a failed setup must not leave the connection open
				conn.EXPECT().Logout().Return(nil)
			}

			err := ic.setup("secret", cc)
			if len(tc.expectedErr) > 0 {
				assert.EqualError(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
