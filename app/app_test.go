// SPDX-License-Identifier: GPL-3.0-or-later
package app

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CrawX/go-imap-correspondents/config"
	"github.com/CrawX/go-imap-correspondents/log"
	"github.com/CrawX/go-imap-correspondents/persistence"
	"github.com/stretchr/testify/assert"
)

const (
	mailToBob      = "From: Me <me@example.com>\r\nTo: Bob <bob@x.com>, Alice <alice@x.com>\r\nDate: Mon, 01 Jan 2024 10:00:00 +0000\r\n\r\n"
	mailFromAlice  = "From: Alice <alice@x.com>\r\nTo: me@example.com\r\nDate: Tue, 02 Jan 2024 10:00:00 +0000\r\n\r\n"
	mailToAliceOld = "From: me@example.com\r\nTo: \"Alice A.\" <Alice@X.com>\r\nDate: Sun, 31 Dec 2023 10:00:00 +0000\r\n\r\n"
	contactCarol   = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Carol\r\nEMAIL:carol@x.com\r\nEND:VCARD\r\n"
)

func writeFile(t *testing.T, path, content string) {
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func touch(t *testing.T, path string, modTime time.Time) {
	assert.NoError(t, os.Chtimes(path, modTime, modTime))
}

func setupApp(t *testing.T, options *Options) (*App, *bytes.Buffer, string) {
	log.InitLogging("error")

	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	writeFile(t, filepath.Join(store, "Inbox", "1.eml"), mailToBob)
	writeFile(t, filepath.Join(store, "Inbox", "2.eml"), mailFromAlice)
	writeFile(t, filepath.Join(store, "Inbox", "3.eml"), mailToAliceOld)
	writeFile(t, filepath.Join(store, "Contacts", "carol.vcf"), contactCarol)

	// walked newest first: 2, 1, 3
	touch(t, filepath.Join(store, "Inbox", "3.eml"), time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC))
	touch(t, filepath.Join(store, "Inbox", "1.eml"), time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	touch(t, filepath.Join(store, "Inbox", "2.eml"), time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))

	conf := &config.Config{
		MailFolder: "Inbox",
		Accounts: []*config.Account{
			{Address: "me@example.com", Type: config.TypeLocal, Path: store},
		},
	}

	var stdout bytes.Buffer
	a := newApp(options, conf, newConfigProvider(conf, nil), &stdout)
	a.location = time.UTC
	a.now = func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC) }
	return a, &stdout, dir
}

func TestExportRecipients(t *testing.T) {
	options := &Options{Recipients: true, Limit: -1, CSV: true, JSON: true, Matrix: true}
	a, stdout, dir := setupApp(t, options)
	options.Output = filepath.Join(dir, "out.txt")

	assert.Equal(t, 0, a.run())

	f, err := os.Open(filepath.Join(dir, "out.csv"))
	assert.NoError(t, err)
	defer f.Close()

	bom := make([]byte, 3)
	_, err = f.Read(bom)
	assert.NoError(t, err)
	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Email", "Name", "Type", "Account", "ContactCount", "LatestContactDate", "IsOwnAccount"},
		{"alice@x.com", "Alice A.", "Sender", "default", "3", "2024-01-02 10:00:00", ""},
		{"me@example.com", "", "To (Recipient)", "default", "3", "2024-01-02 10:00:00", "Yes"},
		{"bob@x.com", "Bob", "To (Recipient)", "default", "1", "2024-01-01 10:00:00", ""},
	}, records)

	_, err = os.Stat(filepath.Join(dir, "out.json"))
	assert.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Total: 3 unique recipients (sorted by most contacted)")
	assert.Contains(t, out, "Processed 3 mails, found 3 unique correspondents")
	assert.Contains(t, out, "Exported CSV: "+filepath.Join(dir, "out.csv"))
	assert.Contains(t, out, "Exported JSON: "+filepath.Join(dir, "out.json"))
}

func TestExportRecipientsSQLite(t *testing.T) {
	options := &Options{Recipients: true, Limit: 2}
	a, _, dir := setupApp(t, options)
	options.SQLite = filepath.Join(dir, "runs.db")

	assert.Equal(t, 0, a.run())

	p, err := persistence.NewPersistence(options.SQLite)
	assert.NoError(t, err)
	defer p.Close()

	runs, err := p.Runs()
	assert.NoError(t, err)
	if assert.Len(t, runs, 1) {
		assert.Equal(t, 2, runs[0].Processed)
		assert.Equal(t, "Inbox", runs[0].Folder)
	}

	// only sqlite was selected, no csv next to it
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	assert.NoError(t, err)
	assert.Len(t, matches, 0)
}

func TestExportFailureStillRunsOtherFormats(t *testing.T) {
	options := &Options{Recipients: true, Limit: -1, CSV: true, Matrix: true}
	a, stdout, dir := setupApp(t, options)
	options.Output = filepath.Join(dir, "missing", "out")

	assert.Equal(t, 1, a.run())
	assert.Contains(t, stdout.String(), "Total: 3 unique recipients")
	assert.Contains(t, stdout.String(), "1 export(s) failed")
}

func TestUnknownAccountIsFatal(t *testing.T) {
	options := &Options{Recipients: true, Limit: -1, Account: "other@example.com", Matrix: true}
	a, stdout, _ := setupApp(t, options)

	assert.Equal(t, 1, a.run())
	assert.Equal(t, "", stdout.String())
}

func TestMissingFolderExportsEmpty(t *testing.T) {
	options := &Options{Recipients: true, Limit: -1, MailFolder: "Receipts", Matrix: true}
	a, stdout, _ := setupApp(t, options)

	assert.Equal(t, 0, a.run())
	assert.Contains(t, stdout.String(), "No recipients to display.")
}

func TestExportContacts(t *testing.T) {
	options := &Options{Limit: -1, JSON: true, Matrix: true}
	a, stdout, dir := setupApp(t, options)
	options.Output = filepath.Join(dir, "contacts")

	assert.Equal(t, 0, a.run())

	content, err := os.ReadFile(filepath.Join(dir, "contacts.json"))
	assert.NoError(t, err)
	assert.Contains(t, string(content), `"Email1": "carol@x.com"`)
	assert.Contains(t, stdout.String(), "Total: 1 contacts")
}

func TestListAccounts(t *testing.T) {
	a, stdout, dir := setupApp(t, &Options{ListAccounts: true, Limit: -1})

	assert.Equal(t, 0, a.run())
	assert.Equal(t, "Configured accounts (1):\n  1. me@example.com <me@example.com> [local] "+filepath.Join(dir, "store")+"\n", stdout.String())
}

func TestListFolders(t *testing.T) {
	a, stdout, _ := setupApp(t, &Options{ListFolders: true, Limit: -1})

	assert.Equal(t, 0, a.run())
	assert.Equal(t, "Folders of me@example.com:\n  Contacts (1 items)\n  Inbox (3 items)\n", stdout.String())
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	assert.Equal(t, "recipients_20240203_040506", outputBase("", recipientsPrefix, now))
	assert.Equal(t, "mine", outputBase("mine", recipientsPrefix, now))

	tests := []struct {
		base     string
		ext      string
		expected string
	}{
		{"out", ".csv", "out.csv"},
		{"out.csv", ".json", "out.json"},
		{"dir.d/out", ".csv", "dir.d/out.csv"},
	}
	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, outputPath(tc.base, tc.ext))
		})
	}
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.toml")
	writeFile(t, configFile, "MailFolder = \"Inbox\"\n")

	var stdout bytes.Buffer
	assert.Equal(t, 1, Run(&Options{ConfigFile: configFile, Loglevel: "panic", Limit: -1}, &stdout))
	assert.True(t, strings.TrimSpace(stdout.String()) == "")
}
