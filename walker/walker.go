// SPDX-License-Identifier: GPL-3.0-or-later
package walker

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/ledger"
	"github.com/CrawX/go-imap-correspondents/log"
	"github.com/CrawX/go-imap-correspondents/mail"

	"github.com/sirupsen/logrus"
)

const (
	ProgressInterval = 25

	// DefaultAccountLabel is recorded as source account when no account was selected explicitly
	DefaultAccountLabel = "default"
)

var (
	ErrNoAccounts      = errors.New("no accounts configured")
	ErrAccountNotFound = errors.New("account not found")
	ErrFolderNotFound  = errors.New("folder not found")
)

type Walker struct {
	provider domain.Provider

	configuration *configuration

	l *logrus.Logger
}

func NewWalker(provider domain.Provider, configFunc ...ConfigFunc) (*Walker, error) {
	config := &configuration{
		MailFolder: DefaultMailFolder,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Walker{
		provider:      provider,
		configuration: config,
		l:             log.Logger(log.LOG_WALKER),
	}, nil
}

// MailFolder is the logical folder name the walker collects from.
func (w *Walker) MailFolder() string {
	return w.configuration.MailFolder
}

// Walk aggregates the senders and recipients of the configured mail folder into a new
// ledger and returns it together with the number of mail items processed. In all
// accounts mode an account that cannot be opened or has no matching folder is skipped.
func (w *Walker) Walk() (*ledger.Ledger, int, error) {
	accounts, err := w.provider.Accounts()
	if err != nil {
		return nil, 0, fmt.Errorf("could not list accounts: %w", err)
	}

	l := ledger.New()

	if w.configuration.AllAccounts {
		if len(accounts) == 0 {
			return nil, 0, ErrNoAccounts
		}

		total := 0
		for _, account := range accounts {
			processed, err := w.walkAccount(l, account, account.Address)
			if err != nil {
				w.l.WithFields(logrus.Fields{"account": account.Address, "error": err}).Error("Skipping account")
				continue
			}
			total += processed
		}

		return l, total, nil
	}

	account, label, err := w.selectAccount(accounts)
	if err != nil {
		return nil, 0, err
	}

	processed, err := w.walkAccount(l, account, label)
	if errors.Is(err, ErrFolderNotFound) {
		w.l.WithFields(logrus.Fields{"account": account.Address, "folder": w.configuration.MailFolder}).Warn("Could not find folder, nothing to export")
		return l, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	return l, processed, nil
}

func (w *Walker) selectAccount(accounts []*domain.Account) (*domain.Account, string, error) {
	if len(accounts) == 0 {
		return nil, "", ErrNoAccounts
	}

	if len(w.configuration.Account) == 0 {
		return accounts[0], DefaultAccountLabel, nil
	}

	wanted := mail.Normalize(w.configuration.Account)
	for _, a := range accounts {
		if mail.Normalize(a.Address) == wanted {
			return a, a.Address, nil
		}
	}

	return nil, "", fmt.Errorf("%w: %s", ErrAccountNotFound, w.configuration.Account)
}

// walkAccount returns an error only when nothing of the account could be read.
func (w *Walker) walkAccount(l *ledger.Ledger, account *domain.Account, label string) (int, error) {
	store, err := w.provider.Open(account)
	if err != nil {
		return 0, fmt.Errorf("could not open account %s: %w", account.Address, err)
	}
	defer w.closeStore(store, account)

	folder, err := w.resolveFolder(store, w.configuration.MailFolder)
	if err != nil {
		return 0, err
	}

	items, err := store.OpenFolder(folder)
	if err != nil {
		return 0, fmt.Errorf("could not open folder %s: %w", folder.Name, err)
	}

	folderLogger := w.l.WithFields(logrus.Fields{"account": label, "folder": folder.Name})
	defer func() {
		err := items.Close()
		if err != nil {
			folderLogger.WithField("error", err).Warn("Could not close folder")
		}
	}()

	return w.walkFolder(l, items, label, folderLogger), nil
}

func (w *Walker) resolveFolder(store domain.Store, logicalName string) (*domain.Folder, error) {
	folders, err := store.Folders()
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	folder := ResolveFolder(folders, logicalName)
	if folder == nil {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, logicalName)
	}

	return folder, nil
}

func (w *Walker) closeStore(store domain.Store, account *domain.Account) {
	err := store.Close()
	if err != nil {
		w.l.WithFields(logrus.Fields{"account": account.Address, "error": err}).Warn("Could not close account")
	}
}

func (w *Walker) walkFolder(l *ledger.Ledger, items domain.ItemSource, account string, folderLogger *logrus.Entry) int {
	available := items.Count()
	limit := available
	if w.configuration.Limit > 0 && w.configuration.Limit < limit {
		limit = w.configuration.Limit
	}
	folderLogger.WithFields(logrus.Fields{"items": available, "limit": limit}).Info("Walking folder")

	processed := 0
	for i := 1; i <= limit; i++ {
		item, err := items.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var itemErr *domain.ItemError
		if errors.As(err, &itemErr) {
			folderLogger.WithFields(logrus.Fields{"item": i, "error": err}).Warn("Skipping unreadable item")
			continue
		}
		if err != nil {
			folderLogger.WithFields(logrus.Fields{"item": i, "error": err}).Error("Could not read folder any further")
			break
		}

		if item == nil {
			continue
		}

		mailItem, ok := item.(domain.MailItem)
		if !ok || item.Kind() != domain.KindMail {
			folderLogger.WithFields(logrus.Fields{"item": i, "kind": item.Kind()}).Debug("Skipping non-mail item")
			continue
		}

		events, err := extractEvents(mailItem)
		if err != nil {
			folderLogger.WithFields(logrus.Fields{"item": i, "error": err}).Warn("Skipping item")
			continue
		}

		for _, e := range events {
			l.MergeOrCreate(e.address, e.name, e.role, account, e.timestamp)
		}

		processed++
		if processed%ProgressInterval == 0 {
			folderLogger.WithFields(logrus.Fields{"processed": processed, "of": limit}).Info("Processed mails")
		}
	}

	folderLogger.WithFields(logrus.Fields{"processed": processed, "correspondents": l.Len()}).Info("Walked folder")
	return processed
}

type event struct {
	address   string
	name      string
	role      domain.Role
	timestamp time.Time
}

// extractEvents reads everything from the item before anything is merged, so a failing
// item never leaves partial events in the ledger.
func extractEvents(item domain.MailItem) ([]event, error) {
	timestamp, err := item.Timestamp()
	if err != nil {
		return nil, fmt.Errorf("could not read timestamp: %w", err)
	}

	sender, err := item.Sender()
	if err != nil {
		return nil, fmt.Errorf("could not resolve sender: %w", err)
	}

	recipients, err := item.Recipients()
	if err != nil {
		return nil, fmt.Errorf("could not enumerate recipients: %w", err)
	}

	events := make([]event, 0, len(recipients)+1)
	if sender != nil {
		address := mail.ResolveAddress(sender.Address)
		if len(address) > 0 {
			events = append(events, event{address, sender.Name, domain.RoleSender, timestamp})
		}
	}

	for _, r := range recipients {
		if r == nil {
			continue
		}
		address := mail.ResolveAddress(r.Address)
		if len(address) == 0 {
			continue
		}
		events = append(events, event{address, r.Name, r.Role, timestamp})
	}

	return events, nil
}
