// SPDX-License-Identifier: GPL-3.0-or-later
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"
)

const contactDateFormat = "2006-01-02"

var contactHeader = []string{
	"Full Name", "First Name", "Last Name", "Middle Name",
	"Email 1", "Email 2", "Email 3",
	"Company", "Job Title", "Department",
	"Business Phone", "Home Phone", "Mobile Phone", "Business Fax",
	"Business Address", "Home Address",
	"Birthday", "Anniversary", "Notes", "Categories",
}

var contactTableHeader = []string{"Name", "Email", "Company", "Job Title", "Mobile", "Business Phone"}

type contactJSON struct {
	FullName        string `json:"FullName"`
	FirstName       string `json:"FirstName"`
	LastName        string `json:"LastName"`
	MiddleName      string `json:"MiddleName"`
	Email1          string `json:"Email1"`
	Email2          string `json:"Email2"`
	Email3          string `json:"Email3"`
	Company         string `json:"Company"`
	JobTitle        string `json:"JobTitle"`
	Department      string `json:"Department"`
	BusinessPhone   string `json:"BusinessPhone"`
	HomePhone       string `json:"HomePhone"`
	MobilePhone     string `json:"MobilePhone"`
	BusinessFax     string `json:"BusinessFax"`
	BusinessAddress string `json:"BusinessAddress"`
	HomeAddress     string `json:"HomeAddress"`
	Birthday        string `json:"Birthday"`
	Anniversary     string `json:"Anniversary"`
	Notes           string `json:"Notes"`
	Categories      string `json:"Categories"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(contactDateFormat)
}

func email(c *domain.Contact, i int) string {
	if i < len(c.Emails) {
		return c.Emails[i]
	}
	return ""
}

func toContactJSON(c *domain.Contact) contactJSON {
	return contactJSON{
		FullName:        c.FullName,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		MiddleName:      c.MiddleName,
		Email1:          email(c, 0),
		Email2:          email(c, 1),
		Email3:          email(c, 2),
		Company:         c.Company,
		JobTitle:        c.JobTitle,
		Department:      c.Department,
		BusinessPhone:   c.BusinessPhone,
		HomePhone:       c.HomePhone,
		MobilePhone:     c.MobilePhone,
		BusinessFax:     c.BusinessFax,
		BusinessAddress: c.BusinessAddress,
		HomeAddress:     c.HomeAddress,
		Birthday:        formatDate(c.Birthday),
		Anniversary:     formatDate(c.Anniversary),
		Notes:           c.Notes,
		Categories:      strings.Join(c.Categories, "; "),
	}
}

func WriteContactsCSV(w io.Writer, contacts []*domain.Contact) error {
	records := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		j := toContactJSON(c)
		records = append(records, []string{
			j.FullName, j.FirstName, j.LastName, j.MiddleName,
			j.Email1, j.Email2, j.Email3,
			j.Company, j.JobTitle, j.Department,
			j.BusinessPhone, j.HomePhone, j.MobilePhone, j.BusinessFax,
			j.BusinessAddress, j.HomeAddress,
			j.Birthday, j.Anniversary, j.Notes, j.Categories,
		})
	}
	return writeDelimited(w, contactHeader, records)
}

func ExportContactsCSV(path string, contacts []*domain.Contact) error {
	return writeFile(path, "csv", func(w io.Writer) error {
		return WriteContactsCSV(w, contacts)
	})
}

func WriteContactsJSON(w io.Writer, contacts []*domain.Contact) error {
	out := make([]contactJSON, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactJSON(c))
	}
	return encodeJSON(w, out)
}

func ExportContactsJSON(path string, contacts []*domain.Contact) error {
	return writeFile(path, "json", func(w io.Writer) error {
		return WriteContactsJSON(w, contacts)
	})
}

func WriteContactsTable(w io.Writer, contacts []*domain.Contact) error {
	if len(contacts) == 0 {
		_, err := io.WriteString(w, "No contacts to display.\n")
		return err
	}

	cells := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		cells = append(cells, []string{c.FullName, email(c, 0), c.Company, c.JobTitle, c.MobilePhone, c.BusinessPhone})
	}

	var sb strings.Builder
	newTable(contactTableHeader, cells, ContactWidthCap).render(&sb, nil)
	sb.WriteString(fmt.Sprintf("\nTotal: %d contacts\n", len(contacts)))

	_, err := io.WriteString(w, sb.String())
	return err
}
