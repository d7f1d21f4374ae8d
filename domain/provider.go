// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider,Store,ItemSource
package domain

import "strings"

// Account is a locally configured mail account.
type Account struct {
	Address     string
	DisplayName string
	Type        string
	// Store describes where the account's data lives (server or path), informational only.
	Store   string
	Aliases []string
}

// Folder is one entry of an account's folder tree.
type Folder struct {
	// Name is the full path of the folder, segments separated by Delimiter.
	Name       string
	Delimiter  string
	Attributes []string
	Messages   uint32
}

// Leaf returns the last path segment of the folder name.
func (f *Folder) Leaf() string {
	if f.Delimiter == "" {
		return f.Name
	}
	i := strings.LastIndex(f.Name, f.Delimiter)
	if i < 0 {
		return f.Name
	}
	return f.Name[i+len(f.Delimiter):]
}

// Depth is the number of parent folders above this one.
func (f *Folder) Depth() int {
	if f.Delimiter == "" {
		return 0
	}
	return strings.Count(f.Name, f.Delimiter)
}

type Provider interface {
	Accounts() ([]*Account, error)
	Open(account *Account) (Store, error)
}

// Store is an opened account. It must be closed on every path.
type Store interface {
	Folders() ([]*Folder, error)
	OpenFolder(folder *Folder) (ItemSource, error)
	Close() error
}

// ItemSource iterates the items of one folder, newest first where the provider can sort.
// Next returns io.EOF after the last item and an *ItemError when a single item could not
// be read; any other error means the folder cannot be read any further.
type ItemSource interface {
	Count() int
	Next() (Item, error)
	Close() error
}
