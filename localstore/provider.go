// SPDX-License-Identifier: GPL-3.0-or-later
package localstore

import (
	"fmt"
	"os"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/log"
	"github.com/CrawX/go-imap-correspondents/mail"

	"github.com/sirupsen/logrus"
)

// Provider serves accounts kept as directories on disk. Account.Store is the account's
// root directory.
type Provider struct {
	accounts  []*domain.Account
	directory Directory

	l *logrus.Logger
}

func NewProvider(accounts []*domain.Account, directory Directory) *Provider {
	return &Provider{
		accounts:  accounts,
		directory: directory,
		l:         log.Logger(log.LOG_LOCALSTORE),
	}
}

func (p *Provider) Accounts() ([]*domain.Account, error) {
	return p.accounts, nil
}

func (p *Provider) Open(account *domain.Account) (domain.Store, error) {
	info, err := os.Stat(account.Store)
	if err != nil {
		return nil, fmt.Errorf("could not open store: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store %s is not a directory", account.Store)
	}

	p.l.WithFields(logrus.Fields{"account": account.Address, "path": account.Store}).Debug("Opened store")

	return &Store{
		root:      account.Store,
		directory: p.directory,
		l:         p.l,
	}, nil
}

// Directory maps internal addresses to SMTP addresses, keys are normalized.
type Directory map[string]string

func NewDirectory(entries map[string]string) Directory {
	d := Directory{}
	for internal, smtp := range entries {
		d[mail.Normalize(internal)] = smtp
	}
	return d
}

func (d Directory) entry(address string) domain.DirectoryEntry {
	return &directoryEntry{address: address, directory: d}
}

type directoryEntry struct {
	address   string
	directory Directory
}

func (e *directoryEntry) SMTPAddress() (string, error) {
	smtp, ok := e.directory[mail.Normalize(e.address)]
	if !ok {
		return "", fmt.Errorf("no directory entry for %s", e.address)
	}
	return smtp, nil
}

// Property is not backed by anything on disk.
func (e *directoryEntry) Property(name string) (string, error) {
	return "", domain.ErrNoProperty
}
