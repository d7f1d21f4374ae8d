// SPDX-License-Identifier: GPL-3.0-or-later
package localstore

import (
	"os"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/mail"
)

type fileMail struct {
	headers   *mail.Headers
	directory Directory
}

func readMail(path string, directory Directory) (*fileMail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers, err := mail.ReadHeaders(f)
	if err != nil {
		return nil, err
	}

	return &fileMail{headers: headers, directory: directory}, nil
}

func (m *fileMail) Kind() domain.ItemKind {
	return domain.KindMail
}

func (m *fileMail) Timestamp() (time.Time, error) {
	return m.headers.Date, nil
}

func (m *fileMail) Sender() (*domain.Participant, error) {
	if m.headers.From == nil {
		return nil, nil
	}
	return m.participant(m.headers.From, domain.RoleSender), nil
}

func (m *fileMail) Recipients() ([]*domain.Participant, error) {
	recipients := []*domain.Participant{}
	for _, list := range []struct {
		addresses []*mail.Address
		role      domain.Role
	}{
		{m.headers.To, domain.RoleTo},
		{m.headers.Cc, domain.RoleCC},
		{m.headers.Bcc, domain.RoleBCC},
	} {
		for _, a := range list.addresses {
			recipients = append(recipients, m.participant(a, list.role))
		}
	}
	return recipients, nil
}

func (m *fileMail) participant(a *mail.Address, role domain.Role) *domain.Participant {
	candidate := domain.AddressCandidate{Direct: a.Address}
	if mail.IsInternal(a.Address) {
		candidate.Entry = m.directory.entry(a.Address)
	}

	return &domain.Participant{
		Address: candidate,
		Name:    a.Name,
		Role:    role,
	}
}
