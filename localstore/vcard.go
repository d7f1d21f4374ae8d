// SPDX-License-Identifier: GPL-3.0-or-later
package localstore

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"

	"github.com/emersion/go-vcard"
)

var birthdayLayouts = []string{"2006-01-02", "20060102"}

type fileContact struct {
	contact *domain.Contact
}

func (c *fileContact) Kind() domain.ItemKind {
	return domain.KindContact
}

func (c *fileContact) Contact() (*domain.Contact, error) {
	return c.contact, nil
}

// readContact reads the first card of a .vcf file.
func readContact(path string) (*fileContact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	card, err := vcard.NewDecoder(f).Decode()
	if err != nil {
		return nil, fmt.Errorf("could not decode vcard: %w", err)
	}

	return &fileContact{contact: cardToContact(card)}, nil
}

func cardToContact(card vcard.Card) *domain.Contact {
	c := &domain.Contact{
		FullName: card.PreferredValue(vcard.FieldFormattedName),
		JobTitle: card.PreferredValue(vcard.FieldTitle),
		Notes:    card.PreferredValue(vcard.FieldNote),
	}

	if name := card.Name(); name != nil {
		c.FirstName = name.GivenName
		c.LastName = name.FamilyName
		c.MiddleName = name.AdditionalName
	}

	for _, email := range card.Values(vcard.FieldEmail) {
		if len(email) > 0 {
			c.Emails = append(c.Emails, email)
		}
	}

	// ORG is "company;unit"
	org := strings.SplitN(card.PreferredValue(vcard.FieldOrganization), ";", 2)
	c.Company = org[0]
	if len(org) > 1 {
		c.Department = org[1]
	}

	for _, tel := range card[vcard.FieldTelephone] {
		switch {
		case tel.Params.HasType(vcard.TypeFax) && tel.Params.HasType(vcard.TypeWork):
			setOnce(&c.BusinessFax, tel.Value)
		case tel.Params.HasType(vcard.TypeCell):
			setOnce(&c.MobilePhone, tel.Value)
		case tel.Params.HasType(vcard.TypeHome):
			setOnce(&c.HomePhone, tel.Value)
		case tel.Params.HasType(vcard.TypeWork):
			setOnce(&c.BusinessPhone, tel.Value)
		}
	}

	for _, adr := range card.Addresses() {
		formatted := formatAddress(adr)
		switch {
		case adr.Params.HasType(vcard.TypeWork):
			setOnce(&c.BusinessAddress, formatted)
		case adr.Params.HasType(vcard.TypeHome):
			setOnce(&c.HomeAddress, formatted)
		}
	}

	c.Birthday = parseDate(card.PreferredValue(vcard.FieldBirthday))
	c.Anniversary = parseDate(card.PreferredValue(vcard.FieldAnniversary))

	for _, v := range card.Values(vcard.FieldCategories) {
		for _, category := range strings.Split(v, ",") {
			category = strings.TrimSpace(category)
			if len(category) > 0 {
				c.Categories = append(c.Categories, category)
			}
		}
	}

	return c
}

func setOnce(field *string, value string) {
	if len(*field) == 0 {
		*field = value
	}
}

func formatAddress(adr *vcard.Address) string {
	parts := []string{}
	for _, p := range []string{adr.StreetAddress, adr.ExtendedAddress, adr.PostalCode, adr.Locality, adr.Region, adr.Country} {
		if len(p) > 0 {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func parseDate(value string) time.Time {
	for _, layout := range birthdayLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
