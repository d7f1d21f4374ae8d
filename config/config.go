// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	TypeImap  = "imap"
	TypeLocal = "local"
)

type Account struct {
	Address     string
	DisplayName string
	// Type is either imap (default) or local
	Type string

	ImapHost        string
	User            string
	Password        string
	PasswordEnv     string
	PasswordKeyring bool
	Compress        bool

	Path string

	// Aliases are further addresses of the same mailbox, used to flag own accounts
	Aliases []string
}

type Config struct {
	Loglevel *string

	MailFolder string
	Limit      int

	// Directory maps internal (X.500 style) addresses to SMTP addresses
	Directory map[string]string

	Accounts []*Account
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		MailFolder: "Inbox",
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	for _, a := range config.Accounts {
		if len(strings.TrimSpace(a.Type)) == 0 {
			a.Type = TypeImap
		}
		a.Type = strings.ToLower(a.Type)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("no accounts configured, add at least one [[Accounts]] section")
	}

	if err := validateNonEmptyStringField(c.MailFolder, "MailFolder must not be empty, set to the folder to collect from"); err != nil {
		return err
	}

	if c.Limit < 0 {
		return fmt.Errorf("Limit must not be negative, set to 0 for no limit")
	}

	seen := map[string]bool{}
	for i, a := range c.Accounts {
		if err := validateNonEmptyStringField(a.Address, fmt.Sprintf("Address of account %d must not be empty", i+1)); err != nil {
			return err
		}

		key := strings.ToLower(a.Address)
		if seen[key] {
			return fmt.Errorf("account %s is configured more than once", a.Address)
		}
		seen[key] = true

		switch a.Type {
		case TypeImap:
			if err := validateNonEmptyStringField(a.ImapHost, fmt.Sprintf("ImapHost of account %s must not be empty, set to host:port of the imap server", a.Address)); err != nil {
				return err
			}
			if err := validateNonEmptyStringField(a.User, fmt.Sprintf("User of account %s must not be empty, set to username on the imap server", a.Address)); err != nil {
				return err
			}
		case TypeLocal:
			if err := validateNonEmptyStringField(a.Path, fmt.Sprintf("Path of account %s must not be empty, set to the directory holding its folders", a.Address)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown Type %q of account %s, use %s or %s", a.Type, a.Address, TypeImap, TypeLocal)
		}
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
