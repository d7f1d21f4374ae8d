// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// Normalize returns the identity key of an address. The fold is ordinal so the same
// input merges the same way regardless of the process locale.
func Normalize(address string) string {
	return strings.ToLower(address)
}

// IsInternal reports whether the address is in a provider internal, non-routable form
// such as an X.500 distinguished name.
func IsInternal(address string) bool {
	return strings.HasPrefix(address, "/")
}

// ResolveAddress picks the most specific routable form of a participant's address.
func ResolveAddress(candidate domain.AddressCandidate) string {
	if len(candidate.Direct) > 0 && !IsInternal(candidate.Direct) {
		return candidate.Direct
	}

	if candidate.Entry != nil {
		address, err := candidate.Entry.SMTPAddress()
		if err == nil && len(address) > 0 {
			return address
		}

		address, err = candidate.Entry.Property(domain.SMTPAddressProperty)
		if err == nil && len(address) > 0 {
			return address
		}
	}

	// Unresolved, keep whatever we have
	return candidate.Direct
}

type Address struct {
	Name    string
	Address string
}

type Headers struct {
	From *Address
	To   []*Address
	Cc   []*Address
	Bcc  []*Address
	// Date is zero if the message has no parsable date
	Date time.Time
}

// ReadHeaders parses the address and date headers of a raw RFC 5322 message. Encoded
// display names are decoded, address fields in internal form are passed through raw.
func ReadHeaders(r io.Reader) (*Headers, error) {
	h, err := textproto.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("could not parse mail header: %w", err)
	}
	header := mail.Header{Header: message.Header{Header: h}}

	headers := &Headers{}

	from, err := addressList(header, "From")
	if err != nil {
		return nil, err
	}
	if len(from) > 0 {
		headers.From = from[0]
	}

	headers.To, err = addressList(header, "To")
	if err != nil {
		return nil, err
	}
	headers.Cc, err = addressList(header, "Cc")
	if err != nil {
		return nil, err
	}
	headers.Bcc, err = addressList(header, "Bcc")
	if err != nil {
		return nil, err
	}

	if len(header.Get("Date")) > 0 {
		date, err := header.Date()
		if err == nil {
			headers.Date = date
		}
	}

	return headers, nil
}

func addressList(header mail.Header, key string) ([]*Address, error) {
	list, err := header.AddressList(key)
	if err != nil {
		raw := strings.TrimSpace(header.Get(key))
		if IsInternal(raw) {
			return []*Address{{Address: raw}}, nil
		}
		return nil, fmt.Errorf("could not parse %s header: %w", key, err)
	}

	addresses := make([]*Address, 0, len(list))
	for _, a := range list {
		addresses = append(addresses, &Address{Name: a.Name, Address: a.Address})
	}
	return addresses, nil
}
