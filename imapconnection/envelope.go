// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"

	"github.com/emersion/go-imap"
)

// envelopeMail is a mail known only by its IMAP envelope, bodies are never fetched.
type envelopeMail struct {
	uid          uint32
	envelope     *imap.Envelope
	internalDate time.Time
}

func (m *envelopeMail) Kind() domain.ItemKind {
	return domain.KindMail
}

// Timestamp prefers the server's receive time over the Date header.
func (m *envelopeMail) Timestamp() (time.Time, error) {
	if !m.internalDate.IsZero() {
		return m.internalDate, nil
	}
	if m.envelope != nil {
		return m.envelope.Date, nil
	}
	return time.Time{}, nil
}

func (m *envelopeMail) Sender() (*domain.Participant, error) {
	if m.envelope == nil {
		return nil, fmt.Errorf("no envelope for uid %d", m.uid)
	}
	if len(m.envelope.From) == 0 {
		return nil, nil
	}

	return participant(m.envelope.From[0], domain.RoleSender), nil
}

func (m *envelopeMail) Recipients() ([]*domain.Participant, error) {
	if m.envelope == nil {
		return nil, fmt.Errorf("no envelope for uid %d", m.uid)
	}

	recipients := []*domain.Participant{}
	for _, list := range []struct {
		addresses []*imap.Address
		role      domain.Role
	}{
		{m.envelope.To, domain.RoleTo},
		{m.envelope.Cc, domain.RoleCC},
		{m.envelope.Bcc, domain.RoleBCC},
	} {
		for _, a := range list.addresses {
			if a == nil {
				continue
			}
			recipients = append(recipients, participant(a, list.role))
		}
	}

	return recipients, nil
}

func participant(a *imap.Address, role domain.Role) *domain.Participant {
	address := ""
	// Group syntax start and end markers carry no host
	if len(a.MailboxName) > 0 && len(a.HostName) > 0 {
		address = a.Address()
	}

	return &domain.Participant{
		Address: domain.AddressCandidate{Direct: address},
		Name:    a.PersonalName,
		Role:    role,
	}
}
