// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"errors"
	"fmt"
	"time"
)

type ItemKind int

const (
	KindOther = ItemKind(iota)
	KindMail
	KindContact
)

func (k ItemKind) String() string {
	switch k {
	case KindMail:
		return "mail"
	case KindContact:
		return "contact"
	}
	return "other"
}

type Role int

const (
	RoleUnknown = Role(iota)
	RoleSender
	RoleTo
	RoleCC
	RoleBCC
)

func (r Role) String() string {
	switch r {
	case RoleSender:
		return "Sender"
	case RoleTo:
		return "To (Recipient)"
	case RoleCC:
		return "CC (Recipient)"
	case RoleBCC:
		return "BCC (Recipient)"
	}
	return "Unknown"
}

// SMTPAddressProperty is the directory property holding an entry's canonical SMTP address.
const SMTPAddressProperty = "smtp-address"

var ErrNoProperty = errors.New("property not available")

// DirectoryEntry is the address book entry behind a sender or recipient.
type DirectoryEntry interface {
	// SMTPAddress resolves the entry to a routable address.
	SMTPAddress() (string, error)
	Property(name string) (string, error)
}

// AddressCandidate carries every form a participant's address is known in.
type AddressCandidate struct {
	Direct string
	Entry  DirectoryEntry
}

type Participant struct {
	Address AddressCandidate
	Name    string
	Role    Role
}

type Item interface {
	Kind() ItemKind
}

type MailItem interface {
	Item
	Sender() (*Participant, error)
	Recipients() ([]*Participant, error)
	// Timestamp returns the zero time when the item carries no date.
	Timestamp() (time.Time, error)
}

type Contact struct {
	FullName        string
	FirstName       string
	LastName        string
	MiddleName      string
	Emails          []string
	Company         string
	JobTitle        string
	Department      string
	BusinessPhone   string
	HomePhone       string
	MobilePhone     string
	BusinessFax     string
	BusinessAddress string
	HomeAddress     string
	Birthday        time.Time
	Anniversary     time.Time
	Notes           string
	Categories      []string
}

type ContactItem interface {
	Item
	Contact() (*Contact, error)
}

// ItemError marks the failure of a single item, the folder itself is still readable.
type ItemError struct {
	Item string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("could not read item %s: %v", e.Item, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
