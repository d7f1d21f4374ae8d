// SPDX-License-Identifier: GPL-3.0-or-later
package walker

import "fmt"

const DefaultMailFolder = "Inbox"

type ConfigFunc func(c *configuration) error

func MailFolder(folder string) ConfigFunc {
	return func(c *configuration) error {
		if len(folder) == 0 {
			return fmt.Errorf("MailFolder cannot be empty")
		}

		c.MailFolder = folder
		return nil
	}
}

func Limit(limit int) ConfigFunc {
	return func(c *configuration) error {
		if limit < 0 {
			return fmt.Errorf("Limit cannot be negative")
		}

		c.Limit = limit
		return nil
	}
}

func Account(address string) ConfigFunc {
	return func(c *configuration) error {
		if len(address) == 0 {
			return fmt.Errorf("Account cannot be empty")
		}

		if c.AllAccounts {
			return fmt.Errorf("Account and AllAccounts cannot be used at the same time")
		}

		c.Account = address
		return nil
	}
}

func AllAccounts() ConfigFunc {
	return func(c *configuration) error {
		if len(c.Account) > 0 {
			return fmt.Errorf("Account and AllAccounts cannot be used at the same time")
		}

		c.AllAccounts = true
		return nil
	}
}

type configuration struct {
	MailFolder string
	// Limit caps the items visited per folder, 0 means unlimited
	Limit int

	Account     string
	AllAccounts bool
}
