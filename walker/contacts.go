// SPDX-License-Identifier: GPL-3.0-or-later
package walker

import (
	"errors"
	"fmt"
	"io"

	"github.com/CrawX/go-imap-correspondents/domain"

	"github.com/sirupsen/logrus"
)

const DefaultContactsFolder = "Contacts"

// Contacts reads the address book entries of the selected account. folderPath is either
// a logical name or a "/" separated folder path, empty selects the default contacts folder.
func (w *Walker) Contacts(folderPath string) ([]*domain.Contact, error) {
	if len(folderPath) == 0 {
		folderPath = DefaultContactsFolder
	}

	accounts, err := w.provider.Accounts()
	if err != nil {
		return nil, fmt.Errorf("could not list accounts: %w", err)
	}

	account, label, err := w.selectAccount(accounts)
	if err != nil {
		return nil, err
	}

	store, err := w.provider.Open(account)
	if err != nil {
		return nil, fmt.Errorf("could not open account %s: %w", account.Address, err)
	}
	defer w.closeStore(store, account)

	folder, err := w.resolveFolder(store, folderPath)
	if err != nil {
		return nil, err
	}

	items, err := store.OpenFolder(folder)
	if err != nil {
		return nil, fmt.Errorf("could not open folder %s: %w", folder.Name, err)
	}

	folderLogger := w.l.WithFields(logrus.Fields{"account": label, "folder": folder.Name})
	defer func() {
		err := items.Close()
		if err != nil {
			folderLogger.WithField("error", err).Warn("Could not close folder")
		}
	}()

	folderLogger.WithField("items", items.Count()).Info("Reading contacts")

	contacts := []*domain.Contact{}
	for i := 1; ; i++ {
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
			return contacts, fmt.Errorf("could not read folder %s: %w", folder.Name, err)
		}

		contactItem, ok := item.(domain.ContactItem)
		if !ok || item.Kind() != domain.KindContact {
			continue
		}

		contact, err := contactItem.Contact()
		if err != nil {
			folderLogger.WithFields(logrus.Fields{"item": i, "error": err}).Warn("Skipping contact")
			continue
		}

		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// Folders lists the folder tree of the selected account.
func (w *Walker) Folders() (*domain.Account, []*domain.Folder, error) {
	accounts, err := w.provider.Accounts()
	if err != nil {
		return nil, nil, fmt.Errorf("could not list accounts: %w", err)
	}

	account, _, err := w.selectAccount(accounts)
	if err != nil {
		return nil, nil, err
	}

	store, err := w.provider.Open(account)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open account %s: %w", account.Address, err)
	}
	defer w.closeStore(store, account)

	folders, err := store.Folders()
	if err != nil {
		return nil, nil, fmt.Errorf("could not list folders: %w", err)
	}

	return account, folders, nil
}
